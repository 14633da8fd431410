package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/models"
)

const uniqueViolation = "23505"

// Repositories holds all repository implementations
type Repositories struct {
	Model      ModelRepository
	Prediction PredictionRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Model:      NewPostgresModelRepository(db),
		Prediction: NewPostgresPredictionRepository(db),
	}, nil
}

// wrapWriteError maps unique violations to models.ErrDuplicateKey
func wrapWriteError(action string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("failed to %s: %w", action, models.ErrDuplicateKey)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
