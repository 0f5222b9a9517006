package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/pricing"
	"carreto-freight-api/internal/quote/models"
	"carreto-freight-api/pkg/gmaps"
	"carreto-freight-api/pkg/publicid"
)

var (
	ErrRouteIncomplete  = errors.New("route step incomplete")
	ErrNotAtReview      = errors.New("draft is not at the review step")
	ErrAlreadySubmitted = errors.New("draft already submitted")
	ErrNotSubmitted     = errors.New("draft not submitted")
)

const defaultJobPhotoURL = "https://images.unsplash.com/photo-1600585152220-90363fe7e115?w=150&h=150&fit=crop"

// Directions resolves the pickup-to-destination leg.
type Directions interface {
	Route(ctx context.Context, origin, destination gmaps.Location, waypoints []gmaps.Location, optimize bool) (*gmaps.RouteResult, error)
}

// Update is a partial mutation of the draft. Nil fields are left alone.
type Update struct {
	PickupAddress  *string             `json:"pickup_address"`
	PickupLocation *gmaps.Location     `json:"pickup_location"`
	Address        *string             `json:"address"`
	DestLocation   *gmaps.Location     `json:"dest_location"`
	Date           *string             `json:"date"`
	TimeSlot       *string             `json:"time_slot"`
	Items          *pricing.ItemCounts `json:"items"`
	Observation    *string             `json:"observation"`
	NeedsHelpers   *bool               `json:"needs_helpers"`
	Disassembly    *bool               `json:"disassembly"`
	HasElevator    *bool               `json:"has_elevator"`
}

// Wizard drives one session's quote draft through the six-step flow.
//
// Pricing and cargo derivation are synchronous: every mutation leaves the
// draft internally consistent before the call returns. The directions
// lookup is the one async piece; a sequence token guards against a slow
// lookup for an old endpoint pair overwriting a newer one.
type Wizard struct {
	mu         sync.Mutex
	draft      models.Draft
	directions Directions
	logger     *slog.Logger
	routeSeq   uint64
}

func NewWizard(directions Directions, logger *slog.Logger) *Wizard {
	w := &Wizard{directions: directions, logger: logger}
	w.draft = freshDraft()
	w.recomputeLocked()
	return w
}

func freshDraft() models.Draft {
	return models.Draft{
		OrderID: publicid.New(),
		Step:    models.StepRoute,
	}
}

// Snapshot returns a copy of the current draft.
func (w *Wizard) Snapshot() models.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Apply merges upd into the draft and recomputes derived fields. When an
// endpoint changes, the resolved leg is invalidated immediately and a
// fresh directions lookup starts in the background if both endpoints are
// set.
func (w *Wizard) Apply(ctx context.Context, upd Update) (models.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Submitted {
		return w.draft, ErrAlreadySubmitted
	}

	endpointChanged := false
	if upd.PickupAddress != nil {
		w.draft.PickupAddress = *upd.PickupAddress
		if *upd.PickupAddress == "" {
			w.draft.PickupLocation = nil
		}
		endpointChanged = true
	}
	if upd.PickupLocation != nil {
		loc := *upd.PickupLocation
		w.draft.PickupLocation = &loc
		endpointChanged = true
	}
	if upd.Address != nil {
		w.draft.Address = *upd.Address
		if *upd.Address == "" {
			w.draft.DestLocation = nil
		}
		endpointChanged = true
	}
	if upd.DestLocation != nil {
		loc := *upd.DestLocation
		w.draft.DestLocation = &loc
		endpointChanged = true
	}
	if upd.Date != nil {
		w.draft.Date = *upd.Date
	}
	if upd.TimeSlot != nil {
		w.draft.TimeSlot = *upd.TimeSlot
	}
	if upd.Items != nil {
		w.draft.Items = clampItems(*upd.Items)
	}
	if upd.Observation != nil {
		w.draft.Observation = *upd.Observation
	}
	if upd.NeedsHelpers != nil {
		w.draft.Addons.NeedsHelpers = *upd.NeedsHelpers
	}
	if upd.Disassembly != nil {
		w.draft.Addons.Disassembly = *upd.Disassembly
	}
	if upd.HasElevator != nil {
		w.draft.Addons.HasElevator = *upd.HasElevator
	}

	if endpointChanged {
		w.draft.Leg = nil
		w.routeSeq++
		if w.draft.PickupLocation != nil && w.draft.DestLocation != nil && w.directions != nil {
			// Outlive the originating request; the seq token handles
			// obsolescence.
			go w.resolveLeg(context.WithoutCancel(ctx), w.routeSeq, *w.draft.PickupLocation, *w.draft.DestLocation)
		}
	}

	w.recomputeLocked()
	return w.draft, nil
}

// resolveLeg fetches directions for one endpoint pair. The result is
// dropped if the endpoints changed while the request was in flight.
func (w *Wizard) resolveLeg(ctx context.Context, seq uint64, origin, dest gmaps.Location) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	route, err := w.directions.Route(ctx, origin, dest, nil, false)
	if err != nil {
		w.logger.Warn("directions lookup failed; quote stays pending", slog.String("error", err.Error()))
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.routeSeq {
		return
	}
	w.draft.Leg = &models.RouteLeg{
		DistanceText:    route.DistanceText,
		DistanceMeters:  route.DistanceMeters,
		DistanceKm:      route.DistanceKm,
		DurationText:    route.DurationText,
		DurationMinutes: route.DurationMinutes,
		Polyline:        route.Polyline,
	}
	w.recomputeLocked()
}

// SetLeg installs a pre-resolved leg directly. Used when the caller
// already has route data, and by tests.
func (w *Wizard) SetLeg(leg models.RouteLeg) models.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.routeSeq++
	w.draft.Leg = &leg
	w.recomputeLocked()
	return w.draft
}

// Next advances one step. Step 1 only advances once both addresses are
// entered and the leg resolved; later steps have no gate. The step never
// passes the review step.
func (w *Wizard) Next() (models.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Submitted {
		return w.draft, ErrAlreadySubmitted
	}
	if w.draft.Step == models.StepRoute && !w.draft.RouteComplete() {
		return w.draft, ErrRouteIncomplete
	}
	if w.draft.Step < models.StepReview {
		w.draft.Step++
	}
	return w.draft, nil
}

// Back retreats one step, never below the first.
func (w *Wizard) Back() (models.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Submitted {
		return w.draft, ErrAlreadySubmitted
	}
	if w.draft.Step > models.StepRoute {
		w.draft.Step--
	}
	return w.draft, nil
}

// Submit marks the draft submitted. Only valid from the review step.
func (w *Wizard) Submit() (models.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Submitted {
		return w.draft, ErrAlreadySubmitted
	}
	if w.draft.Step != models.StepReview {
		return w.draft, ErrNotAtReview
	}
	w.draft.Submitted = true
	return w.draft, nil
}

// Edit reopens a submitted draft at the review step.
func (w *Wizard) Edit() (models.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.draft.Submitted {
		return w.draft, ErrNotSubmitted
	}
	w.draft.Submitted = false
	w.draft.Step = models.StepReview
	return w.draft, nil
}

// Finalize converts the submitted draft into a pending job and resets
// the wizard for the next quote.
func (w *Wizard) Finalize(clientName string) (*freight.FreightJob, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.draft.Submitted {
		return nil, ErrNotSubmitted
	}
	if clientName == "" {
		clientName = "Cliente Atual"
	}

	requirements := []string{}
	if w.draft.Addons.NeedsHelpers {
		requirements = append(requirements, freight.RequirementHelpers)
	}
	if w.draft.Addons.Disassembly {
		requirements = append(requirements, freight.RequirementDisassembly)
	}
	if w.draft.Addons.HasElevator {
		requirements = append(requirements, freight.RequirementElevator)
	} else {
		requirements = append(requirements, freight.RequirementStairs)
	}

	job := &freight.FreightJob{
		ID:               w.draft.OrderID,
		ClientName:       clientName,
		PickupAddress:    w.draft.PickupAddress,
		Address:          w.draft.Address,
		CargoDescription: w.draft.CargoDescription,
		WeightLabel:      w.draft.Vehicle.DisplayName(),
		Price:            w.draft.Quote.Formatted,
		PriceAmount:      w.draft.Quote.Amount,
		Status:           freight.StatusPending,
		PhotoURL:         defaultJobPhotoURL,
		Requirements:     requirements,
		CreatedAt:        time.Now(),
	}
	if w.draft.PickupLocation != nil {
		job.Latitude = w.draft.PickupLocation.Latitude
		job.Longitude = w.draft.PickupLocation.Longitude
	}

	w.draft = freshDraft()
	w.routeSeq++
	w.recomputeLocked()
	return job, nil
}

// Reset abandons the current draft.
func (w *Wizard) Reset() models.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = freshDraft()
	w.routeSeq++
	w.recomputeLocked()
	return w.draft
}

// recomputeLocked rebuilds the derived fields from the inputs. Callers
// must hold w.mu.
func (w *Wizard) recomputeLocked() {
	d := &w.draft
	d.CargoDescription = d.Items.Describe(d.Observation)
	d.WeightKg = d.Items.EstimatedWeightKg()
	d.Vehicle = pricing.ClassifyVehicle(d.WeightKg)

	km := 0.0
	known := d.Leg != nil
	if known {
		km = d.Leg.DistanceKm
	}
	d.Quote = pricing.QuoteFor(d.Vehicle, km, known, d.Addons)
}

func clampItems(c pricing.ItemCounts) pricing.ItemCounts {
	c.Refrigerator = max(0, c.Refrigerator)
	c.Sofa = max(0, c.Sofa)
	c.Table = max(0, c.Table)
	c.Furniture = max(0, c.Furniture)
	c.Boxes = max(0, c.Boxes)
	return c
}
