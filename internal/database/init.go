package database

import (
	"context"
	"fmt"

	"github.com/yourusername/fight-predictor/internal/config"
)

// schema is applied idempotently on startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS models (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		version TEXT NOT NULL,
		model_type TEXT NOT NULL,
		path TEXT NOT NULL,
		scaler_path TEXT NOT NULL,
		hyperparameters JSONB,
		metrics JSONB,
		trained_at TIMESTAMPTZ NOT NULL,
		active BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (name, version)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_models_active ON models (name) WHERE active`,
	`CREATE TABLE IF NOT EXISTS fight_predictions (
		id UUID PRIMARY KEY,
		model_version TEXT NOT NULL,
		red_name TEXT NOT NULL,
		blue_name TEXT NOT NULL,
		winner TEXT NOT NULL,
		winner_corner TEXT NOT NULL,
		probability_red DOUBLE PRECISION NOT NULL,
		probability_blue DOUBLE PRECISION NOT NULL,
		confidence NUMERIC(5, 2) NOT NULL,
		predicted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fight_predictions_predicted_at ON fight_predictions (predicted_at DESC)`,
}

// Initialize creates a database connection pool and ensures the registry schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the registry tables when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
