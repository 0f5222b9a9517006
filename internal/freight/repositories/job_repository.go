package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"carreto-freight-api/internal/freight/models"
)

// JobRepository archives finalized freight jobs in PostgreSQL.
// The archive is write-mostly: the live queue stays in memory and the
// table exists for after-the-fact reporting.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Archive inserts a finalized job. Conflicting IDs are updated in place
// so retried finalizations stay idempotent.
func (r *JobRepository) Archive(ctx context.Context, job *models.FreightJob) error {
	query := `
		INSERT INTO freight_jobs (
			id, client_name, pickup_address, delivery_address,
			cargo_description, vehicle_label, price, price_amount,
			status, photo_url, lat, lng, requirements, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`

	_, err := r.db.ExecContext(ctx, query,
		job.ID,
		job.ClientName,
		job.PickupAddress,
		job.Address,
		job.CargoDescription,
		job.WeightLabel,
		job.Price,
		job.PriceAmount,
		job.Status,
		job.PhotoURL,
		job.Latitude,
		job.Longitude,
		pq.Array(job.Requirements),
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error archiving job: %w", err)
	}
	return nil
}

// UpdateStatus records a lifecycle transition in the archive.
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE freight_jobs SET status = $1 WHERE id = $2`,
		status, jobID,
	)
	if err != nil {
		return fmt.Errorf("error updating archived job status: %w", err)
	}
	return nil
}

// ListRecent returns the most recently archived jobs.
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]models.FreightJob, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_name, pickup_address, delivery_address,
		       cargo_description, vehicle_label, price, price_amount,
		       status, photo_url, lat, lng, requirements, created_at
		FROM freight_jobs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing archived jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.FreightJob
	for rows.Next() {
		var job models.FreightJob
		err := rows.Scan(
			&job.ID,
			&job.ClientName,
			&job.PickupAddress,
			&job.Address,
			&job.CargoDescription,
			&job.WeightLabel,
			&job.Price,
			&job.PriceAmount,
			&job.Status,
			&job.PhotoURL,
			&job.Latitude,
			&job.Longitude,
			pq.Array(&job.Requirements),
			&job.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning archived job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
