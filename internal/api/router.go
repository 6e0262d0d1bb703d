package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers all API endpoints. The CORS middleware wraps the
// whole mux so preflight OPTIONS requests are answered before routing.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(permissiveCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/auth", h.AuthHandler)
	r.Post("/bet", h.PlaceBetHandler)
	r.Post("/user_data", h.UserDataHandler)
	r.Post("/chat", h.ChatPostHandler)
	r.Get("/chat_history", h.ChatHistoryHandler)
	r.Post("/rain", h.RainHandler)
	r.Post("/broadcast/auth", h.ChannelAuthHandler)

	return r
}
