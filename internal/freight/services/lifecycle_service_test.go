package services

import (
	"errors"
	"testing"

	"carreto-freight-api/internal/freight/models"
)

func queue() []*models.FreightJob {
	return []*models.FreightJob{
		{ID: "j1", Price: "R$ 450,00", PriceAmount: 450, Status: models.StatusPending},
		{ID: "j2", Price: "R$ 120,00", PriceAmount: 120, Status: models.StatusPending},
		{ID: "j3", Price: "R$ 180,00", PriceAmount: 180, Status: models.StatusInTransit},
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		jobID   string
		from    models.JobStatus
		to      models.JobStatus
		wantErr error
	}{
		{"pending to in transit", "j1", models.StatusPending, models.StatusInTransit, nil},
		{"pending to canceled", "j1", models.StatusPending, models.StatusCanceled, nil},
		{"in transit to delivered", "j3", models.StatusInTransit, models.StatusDelivered, nil},
		{"in transit to canceled", "j3", models.StatusInTransit, models.StatusCanceled, nil},
		{"pending cannot skip to delivered", "j1", models.StatusPending, models.StatusDelivered, ErrInvalidTransition},
		{"unknown status", "j1", models.StatusPending, models.JobStatus("lost"), ErrInvalidTransition},
		{"unknown job", "nope", models.StatusPending, models.StatusInTransit, ErrJobNotFound},
	}

	svc := NewLifecycleService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := queue()
			job, err := svc.Transition(jobs, tt.jobID, tt.to)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Transition() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition() unexpected error: %v", err)
			}
			if job.Status != tt.to {
				t.Errorf("status = %s, want %s", job.Status, tt.to)
			}
		})
	}
}

func TestTransitionTerminalGuard(t *testing.T) {
	svc := NewLifecycleService()
	jobs := queue()

	if _, err := svc.Transition(jobs, "j3", models.StatusDelivered); err != nil {
		t.Fatalf("setup transition failed: %v", err)
	}

	// Delivered is terminal: nothing may leave it.
	for _, next := range []models.JobStatus{
		models.StatusPending, models.StatusInTransit, models.StatusCanceled, models.StatusDelivered,
	} {
		if _, err := svc.Transition(jobs, "j3", next); !errors.Is(err, ErrTerminalStatus) {
			t.Errorf("Transition(delivered -> %s) error = %v, want ErrTerminalStatus", next, err)
		}
	}
}

func TestStatsDerivedFresh(t *testing.T) {
	svc := NewLifecycleService()
	jobs := queue()

	stats := svc.Stats(jobs)
	if stats.Pending != 2 || stats.InTransit != 1 || stats.Delivered != 0 {
		t.Fatalf("unexpected initial stats: %+v", stats)
	}
	if stats.TotalEarned != 0 {
		t.Errorf("TotalEarned = %v, want 0 before any delivery", stats.TotalEarned)
	}

	if _, err := svc.Transition(jobs, "j3", models.StatusDelivered); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	stats = svc.Stats(jobs)
	if stats.Delivered != 1 {
		t.Errorf("Delivered = %d, want 1", stats.Delivered)
	}
	if stats.TotalEarned != 180 {
		t.Errorf("TotalEarned = %v, want 180 (counted exactly once)", stats.TotalEarned)
	}
	if stats.TotalEarnedFormatted != "R$ 180,00" {
		t.Errorf("TotalEarnedFormatted = %q", stats.TotalEarnedFormatted)
	}

	// Re-deriving without further transitions must not double count.
	again := svc.Stats(jobs)
	if again.TotalEarned != 180 {
		t.Errorf("TotalEarned on re-derivation = %v, want 180", again.TotalEarned)
	}
}

func TestStatsParsesFormattedPriceFallback(t *testing.T) {
	svc := NewLifecycleService()
	jobs := []*models.FreightJob{
		{ID: "legacy", Price: "R$ 1.234,50", Status: models.StatusDelivered},
	}

	stats := svc.Stats(jobs)
	if stats.TotalEarned != 1234.50 {
		t.Errorf("TotalEarned = %v, want 1234.50", stats.TotalEarned)
	}
}
