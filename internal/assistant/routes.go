package assistant

import (
	"net/http"

	"carreto-freight-api/internal/assistant/handlers"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers the assistant routes
func RegisterRoutes(mux *http.ServeMux, handler *handlers.ChatHandler, sessions *session.Manager) {
	mux.Handle("POST /api/v1/assistant/chat", middleware.RequireAuth(
		session.Attach(sessions)(http.HandlerFunc(handler.Chat)),
	))
}
