package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cyber_incidents (
		id BIGSERIAL PRIMARY KEY,
		date TIMESTAMPTZ NOT NULL,
		incident_type TEXT NOT NULL,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		reported_by TEXT,
		resolution_time_hours DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS datasets_metadata (
		id BIGSERIAL PRIMARY KEY,
		dataset_name TEXT NOT NULL UNIQUE,
		department TEXT NOT NULL,
		size_gb DOUBLE PRECISION NOT NULL,
		rows_millions DOUBLE PRECISION NOT NULL,
		upload_date TIMESTAMPTZ NOT NULL,
		last_accessed TIMESTAMPTZ NOT NULL,
		quality_status TEXT NOT NULL,
		dependencies INTEGER NOT NULL DEFAULT 0,
		access_frequency_30d INTEGER NOT NULL DEFAULT 0,
		storage_cost_per_month DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS it_tickets (
		id BIGSERIAL PRIMARY KEY,
		ticket_id TEXT NOT NULL UNIQUE,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		description TEXT,
		created_date TIMESTAMPTZ NOT NULL,
		resolved_date TIMESTAMPTZ,
		assigned_to TEXT,
		total_resolution_time_hours DOUBLE PRECISION,
		stage_times JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates every table the stores need. It is safe to run repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("Database schema is up to date")
	return nil
}
