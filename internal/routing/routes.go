package routing

import (
	"net/http"

	"carreto-freight-api/internal/routing/handlers"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers all route telemetry routes
func RegisterRoutes(mux *http.ServeMux, handler *handlers.RouteHandler, sessions *session.Manager) {
	attach := session.Attach(sessions)
	driver := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.RequireRole(session.RoleDriver)(attach(h)))
	}

	mux.Handle("GET /api/v1/route", middleware.RequireAuth(
		attach(http.HandlerFunc(handler.GetStatus)),
	))

	// Driver routes
	mux.Handle("POST /api/v1/route/start", driver(handler.StartDay))
	mux.Handle("POST /api/v1/route/toggle", driver(handler.Toggle))
}
