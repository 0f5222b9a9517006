package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"carreto-freight-api/internal/routing/models"
	"carreto-freight-api/internal/routing/services"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/response"
)

// RouteHandler exposes the driver's simulated route
type RouteHandler struct {
	routes *services.RouteService
	logger *slog.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routes *services.RouteService, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{routes: routes, logger: logger}
}

// StartDay godoc
//
//	@Summary		Start the delivery day
//	@Description	Optimizes the queue order, fetches route geometry and activates telemetry. Optimizer or directions failures degrade to the original order without geometry.
//	@Tags			route
//	@Produce		json
//	@Success		200	{object}	models.RouteStatus
//	@Failure		422	{object}	response.Response	"Empty job queue"
//	@Router			/route/start [post]
func (h *RouteHandler) StartDay(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	// Plan outside the session lock; the optimizer and directions
	// calls can take seconds.
	jobs := s.Snapshot()
	ordered, err := h.routes.StartDay(r.Context(), s.Route, jobs)
	if err != nil {
		if errors.Is(err, services.ErrNoJobs) {
			response.UnprocessableEntity(w, response.ValidationError("jobs", "no jobs to route"))
			return
		}
		h.logger.Error("start of day failed", slog.String("error", err.Error()))
		response.InternalError(w, "failed to start route")
		return
	}

	s.Lock()
	s.SetJobs(ordered)
	s.Unlock()

	response.Success(w, s.Route.Status())
}

// Toggle godoc
//
//	@Summary		Pause or resume the route
//	@Description	Activating points the route at the first open job; deactivating zeroes the speed and resets the ETA placeholder.
//	@Tags			route
//	@Produce		json
//	@Success		200	{object}	models.RouteStatus
//	@Router			/route/toggle [post]
func (h *RouteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	nextStop := models.StopBase
	s.Lock()
	if next := services.NextJob(s.Jobs()); next != nil {
		nextStop = next.Address
	}
	s.Unlock()

	s.Route.Toggle(nextStop, "")
	response.Success(w, s.Route.Status())
}

// GetStatus godoc
//
//	@Summary	Current route telemetry
//	@Tags		route
//	@Produce	json
//	@Success	200	{object}	models.RouteStatus
//	@Router		/route [get]
func (h *RouteHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	response.Success(w, s.Route.Status())
}
