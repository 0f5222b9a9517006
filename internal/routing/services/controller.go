package services

import (
	"sync"
	"time"

	"carreto-freight-api/internal/routing/models"
	"carreto-freight-api/pkg/gmaps"
)

// Controller owns one session's RouteStatus and the ticker that animates
// it. At most one ticker goroutine is ever live: Activate is a no-op on
// an active route and Deactivate always stops the goroutine before
// clearing state, so toggling can never leak or double a timer.
type Controller struct {
	mu       sync.Mutex
	status   models.RouteStatus
	source   TelemetrySource
	interval time.Duration
	stop     chan struct{}
	onTick   func(models.RouteStatus)
}

// NewController builds an inactive controller parked at start. onTick is
// invoked after every telemetry update, outside the controller lock; nil
// is allowed.
func NewController(start gmaps.Location, source TelemetrySource, interval time.Duration, onTick func(models.RouteStatus)) *Controller {
	return &Controller{
		status: models.RouteStatus{
			CurrentLocation: start,
			NextStop:        models.StopGarage,
			ETA:             models.ETAPlaceholder,
		},
		source:   source,
		interval: interval,
		onTick:   onTick,
	}
}

// Status returns a snapshot of the current telemetry.
func (c *Controller) Status() models.RouteStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetLocation moves the vehicle without touching the active state.
func (c *Controller) SetLocation(loc gmaps.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.CurrentLocation = loc
}

// Activate starts the route toward nextStop and begins ticking. Calling
// it on an already active route changes nothing.
func (c *Controller) Activate(nextStop, polyline string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status.Active {
		return
	}
	c.status.Active = true
	c.status.NextStop = nextStop
	c.status.Polyline = polyline
	c.stop = make(chan struct{})
	go c.run(c.stop)
}

// Deactivate stops the ticker and resets telemetry to the idle shape:
// zero speed, placeholder ETA, nextStop as the parked label.
func (c *Controller) Deactivate(nextStop string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.status.Active {
		return
	}
	close(c.stop)
	c.stop = nil
	c.status.Active = false
	c.status.Speed = 0
	c.status.ETA = models.ETAPlaceholder
	c.status.NextStop = nextStop
	c.status.Polyline = ""
}

// Toggle flips the route state and reports the state after the flip.
func (c *Controller) Toggle(activeNextStop, polyline string) bool {
	if c.Status().Active {
		c.Deactivate(models.StopBase)
		return false
	}
	c.Activate(activeNextStop, polyline)
	return true
}

// Close releases the ticker goroutine. Used on session eviction.
func (c *Controller) Close() {
	c.Deactivate(models.StopBase)
}

func (c *Controller) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if !c.status.Active {
				c.mu.Unlock()
				return
			}
			c.status.Speed, c.status.ETA = c.source.Sample()
			snap := c.status
			c.mu.Unlock()
			if c.onTick != nil {
				c.onTick(snap)
			}
		}
	}
}
