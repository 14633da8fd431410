package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Insert stores a served prediction
func (p *PostgresPredictionRepository) Insert(ctx context.Context, record *models.PredictionRecord) error {
	query := `
		INSERT INTO fight_predictions (id, model_version, red_name, blue_name, winner, winner_corner,
			probability_red, probability_blue, confidence, predicted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.db.Exec(ctx, query,
		record.ID, record.ModelVersion, record.RedName, record.BlueName, record.Winner, string(record.WinnerCorner),
		record.ProbabilityRed, record.ProbabilityBlue, record.Confidence, record.PredictedAt,
	)
	if err != nil {
		return wrapWriteError("insert prediction", err)
	}
	return nil
}

// ListRecent returns the latest stored predictions, newest first
func (p *PostgresPredictionRepository) ListRecent(ctx context.Context, limit int) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, model_version, red_name, blue_name, winner, winner_corner,
			probability_red, probability_blue, confidence, predicted_at
		FROM fight_predictions
		ORDER BY predicted_at DESC
		LIMIT $1
	`

	rows, err := p.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var result []*models.PredictionRecord
	for rows.Next() {
		record := &models.PredictionRecord{}
		var corner string
		if err := rows.Scan(
			&record.ID, &record.ModelVersion, &record.RedName, &record.BlueName, &record.Winner, &corner,
			&record.ProbabilityRed, &record.ProbabilityBlue, &record.Confidence, &record.PredictedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		record.WinnerCorner = models.Corner(corner)
		result = append(result, record)
	}

	return result, rows.Err()
}
