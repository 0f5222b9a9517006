package freight

import (
	"net/http"

	"carreto-freight-api/internal/freight/handlers"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers all job queue routes
func RegisterRoutes(mux *http.ServeMux, handler *handlers.JobHandler, sessions *session.Manager) {
	attach := session.Attach(sessions)

	mux.Handle("GET /api/v1/jobs", middleware.RequireAuth(
		attach(http.HandlerFunc(handler.ListJobs)),
	))
	mux.Handle("GET /api/v1/jobs/stats", middleware.RequireAuth(
		attach(http.HandlerFunc(handler.GetStats)),
	))
	mux.Handle("GET /api/v1/jobs/history", middleware.RequireAuth(
		attach(http.HandlerFunc(handler.History)),
	))

	// Driver routes
	mux.Handle("PATCH /api/v1/jobs/{id}", middleware.RequireAuth(
		middleware.RequireRole(session.RoleDriver)(attach(http.HandlerFunc(handler.UpdateStatus))),
	))
	mux.Handle("POST /api/v1/jobs/{id}/photo", middleware.RequireAuth(
		middleware.RequireRole(session.RoleDriver)(attach(http.HandlerFunc(handler.UploadPhoto))),
	))
}
