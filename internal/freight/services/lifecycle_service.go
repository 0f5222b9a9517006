package services

import (
	"errors"
	"fmt"

	"carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/pricing"
)

var (
	// ErrJobNotFound indicates the job ID is not in the queue
	ErrJobNotFound = errors.New("job not found")
	// ErrTerminalStatus indicates the job already reached a terminal status
	ErrTerminalStatus = errors.New("job is in a terminal status")
	// ErrInvalidTransition indicates the requested transition is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")
)

// allowedTransitions encodes the strict forward-only lifecycle:
// pending -> in_transit -> {delivered, canceled}; pending may also be
// canceled directly. Terminal states permit nothing.
var allowedTransitions = map[models.JobStatus][]models.JobStatus{
	models.StatusPending:   {models.StatusInTransit, models.StatusCanceled},
	models.StatusInTransit: {models.StatusDelivered, models.StatusCanceled},
}

// LifecycleService performs status transitions on jobs within a session
// queue and derives aggregate statistics. It holds no state of its own;
// the caller owns the queue and its locking.
type LifecycleService struct{}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService() *LifecycleService {
	return &LifecycleService{}
}

// Transition finds the job by ID and moves it to the requested status.
// Transitions out of delivered or canceled are rejected.
func (s *LifecycleService) Transition(jobs []*models.FreightJob, jobID string, next models.JobStatus) (*models.FreightJob, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	job := Find(jobs, jobID)
	if job == nil {
		return nil, ErrJobNotFound
	}

	if job.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrTerminalStatus, job.Status)
	}

	for _, allowed := range allowedTransitions[job.Status] {
		if next == allowed {
			job.Status = next
			return job, nil
		}
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, next)
}

// Find returns the job with the given ID, or nil.
func Find(jobs []*models.FreightJob, jobID string) *models.FreightJob {
	for _, j := range jobs {
		if j.ID == jobID {
			return j
		}
	}
	return nil
}

// Stats derives aggregate statistics from the queue. Total earnings sum
// the numeric price of delivered jobs; jobs carrying only a formatted
// price fall back to parsing it.
func (s *LifecycleService) Stats(jobs []*models.FreightJob) models.Stats {
	var stats models.Stats
	for _, j := range jobs {
		switch j.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInTransit:
			stats.InTransit++
		case models.StatusDelivered:
			stats.Delivered++
			stats.TotalEarned += earnings(j)
		case models.StatusCanceled:
			stats.Canceled++
		}
	}
	stats.TotalEarnedFormatted = pricing.FormatBRL(stats.TotalEarned)
	return stats
}

func earnings(j *models.FreightJob) float64 {
	if j.PriceAmount != 0 {
		return j.PriceAmount
	}
	amount, err := pricing.ParseBRL(j.Price)
	if err != nil {
		return 0
	}
	return amount
}
