package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/models"
)

const modelColumns = `id, name, version, model_type, path, scaler_path, hyperparameters, metrics, trained_at, active, created_at, updated_at`

// PostgresModelRepository implements ModelRepository for PostgreSQL
type PostgresModelRepository struct {
	db *database.DB
}

// NewPostgresModelRepository creates a new model repository
func NewPostgresModelRepository(db *database.DB) ModelRepository {
	return &PostgresModelRepository{db: db}
}

// Create inserts a new model registry entry
func (m *PostgresModelRepository) Create(ctx context.Context, model *models.Model) error {
	query := `
		INSERT INTO models (id, name, version, model_type, path, scaler_path, hyperparameters, metrics, trained_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := m.db.Exec(ctx, query,
		model.ID, model.Name, model.Version, model.ModelType, model.Path, model.ScalerPath,
		model.Hyperparameters, model.Metrics, model.TrainedAt, model.Active,
	)
	if err != nil {
		return wrapWriteError("create model", err)
	}

	return nil
}

// GetByID retrieves a model by ID
func (m *PostgresModelRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	query := `SELECT ` + modelColumns + ` FROM models WHERE id = $1`

	model, err := scanModel(m.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}

	return model, nil
}

// GetActive retrieves the active version of a named model
func (m *PostgresModelRepository) GetActive(ctx context.Context, name string) (*models.Model, error) {
	query := `SELECT ` + modelColumns + ` FROM models WHERE name = $1 AND active = true LIMIT 1`

	model, err := scanModel(m.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active model: %w", err)
	}

	return model, nil
}

// List retrieves the most recently trained versions of a named model
func (m *PostgresModelRepository) List(ctx context.Context, name string, limit int) ([]*models.Model, error) {
	query := `SELECT ` + modelColumns + ` FROM models WHERE name = $1 ORDER BY trained_at DESC LIMIT $2`

	rows, err := m.db.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	var result []*models.Model
	for rows.Next() {
		model, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		result = append(result, model)
	}

	return result, rows.Err()
}

// SetActive sets a model as active and deactivates other versions
func (m *PostgresModelRepository) SetActive(ctx context.Context, id uuid.UUID) error {
	model, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return m.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "UPDATE models SET active = false, updated_at = NOW() WHERE name = $1 AND id != $2 AND active", model.Name, id); err != nil {
			return fmt.Errorf("failed to deactivate other versions: %w", err)
		}
		if _, err := tx.Exec(ctx, "UPDATE models SET active = true, updated_at = NOW() WHERE id = $1", id); err != nil {
			return fmt.Errorf("failed to activate model: %w", err)
		}
		return nil
	})
}

func scanModel(row pgx.Row) (*models.Model, error) {
	model := &models.Model{}
	err := row.Scan(
		&model.ID, &model.Name, &model.Version, &model.ModelType, &model.Path, &model.ScalerPath,
		&model.Hyperparameters, &model.Metrics, &model.TrainedAt, &model.Active, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return model, nil
}
