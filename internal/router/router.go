package router

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tanya-chat/internal/config"
	"tanya-chat/internal/handlers"
	"tanya-chat/internal/middleware"
	"tanya-chat/internal/ratelimit"
)

// Rate limit policy: a global cap across all endpoints plus a tighter
// chat-only cap, both per IP.
const (
	GlobalLimit  = 100
	GlobalWindow = 15 * time.Minute
	ChatLimit    = 10
	ChatWindow   = time.Minute

	msgGlobalLimited = "Terlalu banyak permintaan dari IP ini, silakan coba lagi setelah 15 menit."
	msgChatLimited   = "Terlalu banyak pesan chat. Silakan tunggu sebentar sebelum mengirim pesan lagi."
)

func New(
	cfg *config.Config,
	store ratelimit.Store,
	chatHandler *handlers.ChatHandler,
	systemHandler *handlers.SystemHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	if cfg.EnableRequestLogging {
		r.Use(middleware.RequestLogger)
	}
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	globalLimiter := ratelimit.New(store, "global", GlobalLimit, GlobalWindow, msgGlobalLimited)
	chatLimiter := ratelimit.New(store, "chat", ChatLimit, ChatWindow, msgChatLimited)
	r.Use(globalLimiter.Middleware)

	// Health check
	r.Get("/health", systemHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", systemHandler.Config)

		// Chat is gated by its own limiter, evaluated after the global one.
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Chat)
		})
	})

	// Static client bundle, when present.
	if _, err := os.Stat("web"); err == nil {
		fs := http.FileServer(http.Dir("web"))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, "web/index.html")
		})
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Endpoint tidak ditemukan"})
	})

	return r
}
