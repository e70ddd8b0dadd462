package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"tanya-chat/internal/models"
)

// SystemHandler serves the health check and client configuration endpoints.
type SystemHandler struct {
	apiBaseURL string
	startedAt  time.Time
}

func NewSystemHandler(apiBaseURL string) *SystemHandler {
	return &SystemHandler{
		apiBaseURL: apiBaseURL,
		startedAt:  time.Now(),
	}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "OK",
		Timestamp: isoNow(),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

// Config lets the client discover its own API base URL. Empty means
// same-origin.
func (h *SystemHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ConfigResponse{
		APIBaseURL: h.apiBaseURL,
		Timestamp:  isoNow(),
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
