// Package database manages the optional PostgreSQL connection used to
// archive finalized freight jobs. The API runs fully in-memory when no
// database is configured.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"carreto-freight-api/pkg/config"
)

// Connect establishes a connection to the PostgreSQL database.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := cfg.URL
	if connStr == "" {
		connStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate creates the job archive table when missing.
func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS freight_jobs (
    id TEXT PRIMARY KEY,
    client_name TEXT NOT NULL,
    pickup_address TEXT,
    delivery_address TEXT NOT NULL,
    cargo_description TEXT,
    vehicle_label TEXT,
    price TEXT,
    price_amount DOUBLE PRECISION,
    status TEXT NOT NULL,
    photo_url TEXT,
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,
    requirements TEXT[],
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	return nil
}
