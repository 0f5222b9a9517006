package models

import "carreto-freight-api/pkg/gmaps"

// ETAPlaceholder is shown while the route is inactive.
const ETAPlaceholder = "--:--"

// Default next-stop labels for the inactive route
const (
	StopGarage = "Garagem"
	StopBase   = "Base"
)

// RouteStatus is the driver's current simulated telemetry. One instance
// per session, mutated in place by the route controller only.
type RouteStatus struct {
	Active          bool           `json:"is_active"`
	CurrentLocation gmaps.Location `json:"current_location"`
	// Speed in km/h; forced to 0 while inactive
	Speed    int    `json:"speed"`
	NextStop string `json:"next_stop" example:"Rua Emilia Marengo, 500"`
	ETA      string `json:"eta" example:"23 min"`
	// Polyline is the opaque route geometry from the directions
	// provider, passed through untouched to the map layer.
	Polyline string `json:"polyline,omitempty"`
}
