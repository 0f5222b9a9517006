package models

import (
	"carreto-freight-api/internal/pricing"
	"carreto-freight-api/pkg/gmaps"
)

// Wizard steps, in flow order.
type WizardStep int

const (
	StepRoute    WizardStep = 1
	StepDate     WizardStep = 2
	StepTime     WizardStep = 3
	StepItems    WizardStep = 4
	StepServices WizardStep = 5
	StepReview   WizardStep = 6

	TotalSteps = 6
)

// RouteLeg is the resolved pickup-to-destination leg. Present only after
// both endpoints have coordinates and the directions lookup succeeded.
type RouteLeg struct {
	DistanceText    string  `json:"distance_text" example:"12,4 km"`
	DistanceMeters  int     `json:"distance_meters"`
	DistanceKm      float64 `json:"distance_km"`
	DurationText    string  `json:"duration_text" example:"28 min"`
	DurationMinutes int     `json:"duration_minutes"`
	Polyline        string  `json:"polyline,omitempty"`
}

// Draft is the quote under construction. Derived fields (description,
// weight, vehicle, quote) are recomputed on every mutation and never set
// directly by callers.
type Draft struct {
	OrderID   string     `json:"order_id" example:"#583920"`
	Step      WizardStep `json:"step"`
	Submitted bool       `json:"submitted"`

	PickupAddress  string          `json:"pickup_address"`
	PickupLocation *gmaps.Location `json:"pickup_location,omitempty"`
	Address        string          `json:"address"`
	DestLocation   *gmaps.Location `json:"dest_location,omitempty"`

	Date        string              `json:"date" example:"2026-09-12"`
	TimeSlot    string              `json:"time_slot" example:"Manhã (8h - 12h)"`
	Items       pricing.ItemCounts  `json:"items"`
	Observation string              `json:"observation"`
	Addons      pricing.Addons      `json:"addons"`

	// Leg is nil while the route is unresolved; the quote shows the
	// pending label until it lands.
	Leg *RouteLeg `json:"leg,omitempty"`

	CargoDescription string               `json:"cargo_description"`
	WeightKg         int                  `json:"weight_kg"`
	Vehicle          pricing.VehicleClass `json:"vehicle"`
	Quote            pricing.Quote        `json:"quote"`
}

// RouteComplete reports whether step 1 has everything the flow needs to
// advance: both addresses entered and the leg resolved.
func (d *Draft) RouteComplete() bool {
	return d.PickupAddress != "" && d.Address != "" && d.Leg != nil
}
