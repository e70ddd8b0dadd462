package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tanya-chat/internal/models"
	"tanya-chat/internal/services"
	"tanya-chat/internal/validate"
)

// Localized messages for upstream failure kinds.
const (
	msgUpstreamRateLimited = "Terlalu banyak permintaan ke AI. Silakan coba lagi setelah beberapa saat."
	msgMisconfigured       = "Konfigurasi server tidak valid. Silakan hubungi administrator."
	msgUnavailable         = "Layanan AI sedang tidak tersedia. Silakan coba lagi nanti."
	msgGeneric             = "Terjadi kesalahan dalam memproses permintaan Anda. Silakan coba lagi."
)

// completer is the slice of the Groq service the chat handler needs.
type completer interface {
	Complete(ctx context.Context, sanitizedPrompt string) (string, error)
}

type ChatHandler struct {
	ai completer
}

func NewChatHandler(ai completer) *ChatHandler {
	return &ChatHandler{ai: ai}
}

// Chat validates, sanitizes, and forwards a prompt to the completion API.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, validate.MsgNotString)
		return
	}

	if violations := validate.Prompt(req.Prompt); len(violations) > 0 {
		writeError(w, http.StatusBadRequest, violations[0])
		return
	}

	sanitized := validate.Sanitize(req.Prompt)

	log.Printf("📨 Received chat request: %s", truncate(sanitized, 100))

	text, err := h.ai.Complete(r.Context(), sanitized)
	if err != nil {
		log.Printf("❌ Chat error: %v", err)

		var ue *services.UpstreamError
		if errors.As(err, &ue) {
			switch ue.Kind {
			case services.KindRateLimited:
				writeError(w, http.StatusTooManyRequests, msgUpstreamRateLimited)
				return
			case services.KindUnauthorized:
				// Never leak credential details to the caller.
				writeError(w, http.StatusInternalServerError, msgMisconfigured)
				return
			case services.KindUnreachable:
				writeError(w, http.StatusServiceUnavailable, msgUnavailable)
				return
			}
		}
		writeError(w, http.StatusInternalServerError, msgGeneric)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:  text,
		Timestamp: isoNow(),
	})
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// isoNow formats the current time the way JavaScript's toISOString does.
func isoNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
