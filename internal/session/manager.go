package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	freight "carreto-freight-api/internal/freight/models"
	quoteservices "carreto-freight-api/internal/quote/services"
	routingmodels "carreto-freight-api/internal/routing/models"
	routingservices "carreto-freight-api/internal/routing/services"
	"carreto-freight-api/pkg/gmaps"
)

// Factory carries the collaborators every new session's wizard and route
// controller are built with. Directions may be nil; the wizard then
// leaves quotes pending.
type Factory struct {
	Directions   quoteservices.Directions
	Telemetry    routingservices.TelemetrySource
	TickInterval time.Duration
	// OnTick is fanned out per session so broadcast consumers can key
	// telemetry by session. Nil disables fan-out.
	OnTick func(sessionID uuid.UUID, status routingmodels.RouteStatus)
	Logger *slog.Logger
}

// Manager owns the session table and its idle eviction.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	factory  Factory
	ttl      time.Duration
	logger   *slog.Logger
}

func NewManager(factory Factory, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		factory:  factory,
		ttl:      ttl,
		logger:   logger,
	}
}

// Create builds a session pre-seeded with the demo queue.
func (m *Manager) Create(name, role string) *Session {
	id := uuid.New()
	start := gmaps.Location{Latitude: freight.Base.Lat, Longitude: freight.Base.Lng}

	var onTick func(routingmodels.RouteStatus)
	if m.factory.OnTick != nil {
		fan := m.factory.OnTick
		onTick = func(status routingmodels.RouteStatus) { fan(id, status) }
	}

	s := &Session{
		ID:        id,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
		Wizard:    quoteservices.NewWizard(m.factory.Directions, m.factory.Logger),
		Route:     routingservices.NewController(start, m.factory.Telemetry, m.factory.TickInterval, onTick),
		lastSeen:  time.Now(),
		jobs:      freight.SeedJobs(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session and refreshes its idle clock.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// Delete removes a session and stops its route ticker.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Route.Close()
	}
}

// Count returns the live session count.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run evicts idle sessions until ctx is done. Meant to be started once
// as a background goroutine.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Route.Close()
		m.logger.Info("session expired", slog.String("session_id", s.ID.String()))
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Route.Close()
		delete(m.sessions, id)
	}
}
