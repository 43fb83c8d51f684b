package httpserver

import (
	"net/http"

	"discutidor/internal/middleware"

	"log/slog"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Logger *slog.Logger
	Chat   *ChatHandler
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Discutidor API - Endpoint disponible: POST /api/v1/chat",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", deps.Chat.Chat)
		r.Get("/conversations", deps.Chat.Conversations)
		r.Get("/conversations/{id}", deps.Chat.Conversation)
	})

	return r
}
