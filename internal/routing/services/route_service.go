package services

import (
	"context"
	"errors"
	"log/slog"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/routing/models"
	"carreto-freight-api/pkg/genai"
	"carreto-freight-api/pkg/gmaps"
)

var ErrNoJobs = errors.New("no jobs to route")

// Optimizer suggests a visiting order for the day's jobs.
type Optimizer interface {
	OptimizeOrder(ctx context.Context, jobs []genai.OptimizeJob) ([]string, error)
}

// Directions computes a drivable route through the day's stops.
type Directions interface {
	Route(ctx context.Context, origin, destination gmaps.Location, waypoints []gmaps.Location, optimize bool) (*gmaps.RouteResult, error)
}

// RouteService plans the start of a driver's day: optionally reorders the
// queue via the optimizer, fetches route geometry, and kicks the
// controller into the active state. Both collaborators are optional and
// the plan degrades gracefully without either.
type RouteService struct {
	optimizer  Optimizer
	directions Directions
	logger     *slog.Logger
}

func NewRouteService(optimizer Optimizer, directions Directions, logger *slog.Logger) *RouteService {
	return &RouteService{optimizer: optimizer, directions: directions, logger: logger}
}

// StartDay reorders jobs, activates the route toward the first open stop
// and returns the (possibly reordered) queue. Optimizer and directions
// failures are logged and absorbed: the route still starts, in the
// original order and without geometry.
func (s *RouteService) StartDay(ctx context.Context, ctrl *Controller, jobs []*freight.FreightJob) ([]*freight.FreightJob, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	ordered := jobs
	if s.optimizer != nil {
		ids, err := s.optimizer.OptimizeOrder(ctx, optimizeView(jobs))
		if err != nil {
			s.logger.Warn("route optimization unavailable, keeping original order", slog.String("error", err.Error()))
		} else {
			ordered = Reconcile(jobs, ids)
		}
	}

	polyline := ""
	if s.directions != nil {
		origin := ctrl.Status().CurrentLocation
		last := ordered[len(ordered)-1]
		waypoints := make([]gmaps.Location, 0, len(ordered)-1)
		for _, j := range ordered[:len(ordered)-1] {
			waypoints = append(waypoints, gmaps.Location{Latitude: j.Latitude, Longitude: j.Longitude})
		}
		dest := gmaps.Location{Latitude: last.Latitude, Longitude: last.Longitude}
		route, err := s.directions.Route(ctx, origin, dest, waypoints, true)
		if err != nil {
			s.logger.Warn("directions unavailable, starting route without geometry", slog.String("error", err.Error()))
		} else {
			polyline = route.Polyline
			ordered = applyWaypointOrder(ordered, route.WaypointOrder)
		}
	}

	nextStop := models.StopBase
	if next := NextJob(ordered); next != nil {
		nextStop = next.Address
	}
	ctrl.Activate(nextStop, polyline)
	return ordered, nil
}

// applyWaypointOrder permutes the waypoint jobs (all but the final
// destination) by the visiting order the directions API chose. A missing
// or malformed order leaves the queue untouched.
func applyWaypointOrder(jobs []*freight.FreightJob, order []int) []*freight.FreightJob {
	n := len(jobs) - 1
	if len(order) != n {
		return jobs
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return jobs
		}
		seen[idx] = true
	}

	reordered := make([]*freight.FreightJob, 0, len(jobs))
	for _, idx := range order {
		reordered = append(reordered, jobs[idx])
	}
	return append(reordered, jobs[n])
}

func optimizeView(jobs []*freight.FreightJob) []genai.OptimizeJob {
	out := make([]genai.OptimizeJob, len(jobs))
	for i, j := range jobs {
		out[i] = genai.OptimizeJob{ID: j.ID, Address: j.Address, Weight: j.WeightLabel}
	}
	return out
}
