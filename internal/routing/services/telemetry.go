package services

import (
	"fmt"
	"math/rand/v2"

	"carreto-freight-api/pkg/config"
)

// TelemetrySource produces one telemetry sample per tick. Implementations
// must be safe for concurrent use.
type TelemetrySource interface {
	Sample() (speedKmh int, eta string)
}

// RandomTelemetry generates plausible in-city readings within the
// configured bounds. Good enough for the demo fleet; a real GPS feed
// would implement TelemetrySource instead.
type RandomTelemetry struct {
	cfg config.TelemetryConfig
}

func NewRandomTelemetry(cfg config.TelemetryConfig) *RandomTelemetry {
	return &RandomTelemetry{cfg: cfg}
}

func (t *RandomTelemetry) Sample() (int, string) {
	speed := t.cfg.MinSpeed + rand.IntN(t.cfg.MaxSpeed-t.cfg.MinSpeed)
	eta := fmt.Sprintf("%d min", t.cfg.MinETA+rand.IntN(t.cfg.MaxETA-t.cfg.MinETA))
	return speed, eta
}
