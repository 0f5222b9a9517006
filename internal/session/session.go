// Package session holds the per-user in-memory state: the job queue, the
// quote wizard and the route controller. There is no cross-session
// persistence; a session is the whole world for its user.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	freight "carreto-freight-api/internal/freight/models"
	quoteservices "carreto-freight-api/internal/quote/services"
	routingservices "carreto-freight-api/internal/routing/services"
)

// Roles a session can carry.
const (
	RoleClient = "client"
	RoleDriver = "driver"
)

// Session is one authenticated user's state. Handlers must hold the lock
// across any read-modify-write of Jobs; Wizard and Route guard
// themselves.
type Session struct {
	ID        uuid.UUID
	Name      string
	Role      string
	CreatedAt time.Time

	Wizard *quoteservices.Wizard
	Route  *routingservices.Controller

	mu       sync.Mutex
	lastSeen time.Time
	jobs     []*freight.FreightJob
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Jobs returns the live job slice. Callers must hold the session lock.
func (s *Session) Jobs() []*freight.FreightJob { return s.jobs }

// SetJobs replaces the job queue. Callers must hold the session lock.
func (s *Session) SetJobs(jobs []*freight.FreightJob) { s.jobs = jobs }

// AppendJob adds a job to the front of the queue so the newest order is
// the next visible one. Callers must hold the session lock.
func (s *Session) AppendJob(job *freight.FreightJob) {
	s.jobs = append([]*freight.FreightJob{job}, s.jobs...)
}

// Snapshot returns a copy of the queue safe to serialize without the
// lock held.
func (s *Session) Snapshot() []*freight.FreightJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*freight.FreightJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
