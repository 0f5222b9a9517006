package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/pricing"
	"carreto-freight-api/internal/quote/models"
	"carreto-freight-api/pkg/gmaps"
)

type fakeDirections struct {
	mu      sync.Mutex
	result  *gmaps.RouteResult
	err     error
	release chan struct{} // when set, Route blocks until closed
	calls   int
}

func (f *fakeDirections) Route(_ context.Context, _, _ gmaps.Location, _ []gmaps.Location, _ bool) (*gmaps.RouteResult, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	return f.result, f.err
}

func testWizard(d Directions) *Wizard {
	return NewWizard(d, slog.New(slog.DiscardHandler))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func locPtr(lat, lng float64) *gmaps.Location {
	return &gmaps.Location{Latitude: lat, Longitude: lng}
}

func TestWizardStartsFresh(t *testing.T) {
	w := testWizard(nil)
	d := w.Snapshot()

	if d.Step != models.StepRoute || d.Submitted {
		t.Fatalf("fresh draft at step %d submitted=%v", d.Step, d.Submitted)
	}
	if !strings.HasPrefix(d.OrderID, "#") || len(d.OrderID) != 7 {
		t.Fatalf("unexpected order id %q", d.OrderID)
	}
	if d.CargoDescription != "Carga Diversa" {
		t.Fatalf("empty items should describe as Carga Diversa, got %q", d.CargoDescription)
	}
	if d.Quote.Available {
		t.Fatal("quote must be pending before the leg resolves")
	}
	if d.Quote.Formatted != pricing.PendingPriceLabel {
		t.Fatalf("pending quote label = %q", d.Quote.Formatted)
	}
}

func TestWizardStepOneGate(t *testing.T) {
	w := testWizard(nil)

	if _, err := w.Next(); !errors.Is(err, ErrRouteIncomplete) {
		t.Fatalf("expected ErrRouteIncomplete, got %v", err)
	}

	_, err := w.Apply(context.Background(), Update{
		PickupAddress: strPtr("Rua Emilia Marengo, 500"),
		Address:       strPtr("Av. Paulista, 1000"),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := w.Next(); !errors.Is(err, ErrRouteIncomplete) {
		t.Fatal("addresses without a resolved leg must not pass the gate")
	}

	w.SetLeg(models.RouteLeg{DistanceText: "10,0 km", DistanceKm: 10})
	d, err := w.Next()
	if err != nil {
		t.Fatalf("Next after leg resolved: %v", err)
	}
	if d.Step != models.StepDate {
		t.Fatalf("step = %d, want %d", d.Step, models.StepDate)
	}
}

func TestWizardStepClamps(t *testing.T) {
	w := testWizard(nil)

	if d, _ := w.Back(); d.Step != models.StepRoute {
		t.Fatalf("Back below first step moved to %d", d.Step)
	}

	w.Apply(context.Background(), Update{PickupAddress: strPtr("a"), Address: strPtr("b")})
	w.SetLeg(models.RouteLeg{DistanceKm: 2})
	for range 10 {
		w.Next()
	}
	if d := w.Snapshot(); d.Step != models.StepReview {
		t.Fatalf("step should clamp at review, got %d", d.Step)
	}
}

func TestWizardDerivedFields(t *testing.T) {
	w := testWizard(nil)
	w.SetLeg(models.RouteLeg{DistanceKm: 10})

	d, err := w.Apply(context.Background(), Update{
		Items:       &pricing.ItemCounts{Refrigerator: 1, Boxes: 10},
		Observation: strPtr("Cuidado com o vidro"),
		HasElevator: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if d.WeightKg != 230 {
		t.Errorf("weight = %d, want 230", d.WeightKg)
	}
	if d.Vehicle != pricing.VehicleVan {
		t.Errorf("vehicle = %s, want van", d.Vehicle)
	}
	want := "1x Geladeira, 10x Caixas (Obs: Cuidado com o vidro)"
	if d.CargoDescription != want {
		t.Errorf("description = %q, want %q", d.CargoDescription, want)
	}
	// 120 + 10*4.5, elevator present so no stairs surcharge
	if !d.Quote.Available || d.Quote.Amount != 165 {
		t.Errorf("quote = %+v, want 165.00 available", d.Quote)
	}
}

func TestWizardEndpointChangeInvalidatesLeg(t *testing.T) {
	dir := &fakeDirections{err: errors.New("offline")}
	w := testWizard(dir)
	w.SetLeg(models.RouteLeg{DistanceKm: 10})

	d, _ := w.Apply(context.Background(), Update{Address: strPtr("Rua Nova, 1")})
	if d.Leg != nil {
		t.Fatal("changing an endpoint must clear the resolved leg")
	}
	if d.Quote.Available || d.Quote.Formatted != pricing.PendingPriceLabel {
		t.Fatalf("quote should fall back to pending, got %+v", d.Quote)
	}
}

func TestWizardStaleDirectionsDiscarded(t *testing.T) {
	release := make(chan struct{})
	dir := &fakeDirections{
		result:  &gmaps.RouteResult{DistanceText: "99 km", DistanceKm: 99},
		release: release,
	}
	w := testWizard(dir)

	// First pair: lookup starts and blocks.
	w.Apply(context.Background(), Update{
		PickupLocation: locPtr(-23.54, -46.57),
		DestLocation:   locPtr(-23.56, -46.56),
	})
	// Second change invalidates the in-flight lookup, then resolves.
	w.Apply(context.Background(), Update{DestLocation: locPtr(-23.60, -46.50)})
	w.SetLeg(models.RouteLeg{DistanceText: "5,0 km", DistanceKm: 5})

	close(release)
	// Give the stale goroutines a chance to run to completion.
	time.Sleep(20 * time.Millisecond)

	d := w.Snapshot()
	if d.Leg == nil || d.Leg.DistanceText != "5,0 km" {
		t.Fatalf("stale lookup overwrote the current leg: %+v", d.Leg)
	}
}

func TestWizardSubmitLifecycle(t *testing.T) {
	w := testWizard(nil)

	if _, err := w.Submit(); !errors.Is(err, ErrNotAtReview) {
		t.Fatalf("submit away from review: %v", err)
	}
	if _, err := w.Edit(); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("edit before submit: %v", err)
	}

	w.Apply(context.Background(), Update{PickupAddress: strPtr("a"), Address: strPtr("b")})
	w.SetLeg(models.RouteLeg{DistanceKm: 10})
	for range 5 {
		w.Next()
	}

	d, err := w.Submit()
	if err != nil || !d.Submitted {
		t.Fatalf("submit at review: %v, submitted=%v", err, d.Submitted)
	}
	if _, err := w.Submit(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("double submit: %v", err)
	}
	if _, err := w.Next(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatal("a submitted draft must reject navigation")
	}
	if _, err := w.Apply(context.Background(), Update{Date: strPtr("2026-09-12")}); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatal("a submitted draft must reject edits")
	}

	d, err = w.Edit()
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if d.Submitted || d.Step != models.StepReview {
		t.Fatalf("edit should reopen at review, got step %d submitted=%v", d.Step, d.Submitted)
	}
}

func TestWizardFinalize(t *testing.T) {
	w := testWizard(nil)
	w.Apply(context.Background(), Update{
		PickupAddress:  strPtr("Rua Emilia Marengo, 500"),
		PickupLocation: locPtr(-23.5613, -46.56),
		Address:        strPtr("Av. Paulista, 1000"),
		DestLocation:   locPtr(-23.5614, -46.6559),
		Items:          &pricing.ItemCounts{Sofa: 1},
		NeedsHelpers:   boolPtr(true),
	})
	w.SetLeg(models.RouteLeg{DistanceKm: 10})
	for range 5 {
		w.Next()
	}
	firstID := w.Snapshot().OrderID
	if _, err := w.Finalize("Maria"); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("finalize before submit: %v", err)
	}
	w.Submit()

	job, err := w.Finalize("Maria")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if job.ID != firstID || job.ClientName != "Maria" {
		t.Errorf("job identity: %+v", job)
	}
	if job.Status != freight.StatusPending {
		t.Errorf("status = %s, want pending", job.Status)
	}
	if job.WeightLabel != "Van Utilitária" {
		t.Errorf("weight label = %q", job.WeightLabel)
	}
	if job.Latitude != -23.5613 {
		t.Errorf("job should pin the pickup location, lat = %v", job.Latitude)
	}
	wantReqs := []string{freight.RequirementHelpers, freight.RequirementStairs}
	if len(job.Requirements) != 2 || job.Requirements[0] != wantReqs[0] || job.Requirements[1] != wantReqs[1] {
		t.Errorf("requirements = %v, want %v", job.Requirements, wantReqs)
	}
	// 120 base + 45 distance + 120 helpers + 50 stairs
	if job.PriceAmount != 335 {
		t.Errorf("price = %v, want 335", job.PriceAmount)
	}

	next := w.Snapshot()
	if next.Submitted || next.Step != models.StepRoute || next.OrderID == firstID {
		t.Fatalf("wizard should reset after finalize: %+v", next)
	}
}
