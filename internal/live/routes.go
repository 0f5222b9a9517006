package live

import (
	"net/http"

	"carreto-freight-api/internal/live/handlers"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers the telemetry feed route
func RegisterRoutes(mux *http.ServeMux, handler *handlers.WSHandler) {
	// WebSocketAuth instead of RequireAuth so the token can ride the
	// query string during the upgrade
	mux.Handle("GET /api/v1/ws", middleware.WebSocketAuth(
		http.HandlerFunc(handler.HandleConnection),
	))
}
