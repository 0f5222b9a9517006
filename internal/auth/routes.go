package auth

import (
	"net/http"

	"carreto-freight-api/internal/auth/handlers"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers all auth routes
func RegisterRoutes(mux *http.ServeMux, handler *handlers.AuthHandler) {
	mux.HandleFunc("POST /api/v1/auth/login", handler.Login)
	mux.HandleFunc("POST /api/v1/auth/guest", handler.Guest)
	mux.Handle("POST /api/v1/auth/logout", middleware.RequireAuth(
		http.HandlerFunc(handler.Logout),
	))
}
