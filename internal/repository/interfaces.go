// Package repository provides PostgreSQL persistence for the model registry and prediction log.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/fight-predictor/internal/models"
)

// ModelRepository defines the interface for trained model registry access
type ModelRepository interface {
	Create(ctx context.Context, model *models.Model) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error)
	GetActive(ctx context.Context, name string) (*models.Model, error)
	List(ctx context.Context, name string, limit int) ([]*models.Model, error)
	SetActive(ctx context.Context, id uuid.UUID) error
}

// PredictionRepository defines the interface for the served prediction log
type PredictionRepository interface {
	Insert(ctx context.Context, record *models.PredictionRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.PredictionRecord, error)
}
