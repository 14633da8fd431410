package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PredictionRecord is a served prediction as stored in the database
type PredictionRecord struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ModelVersion    string          `db:"model_version" json:"model_version"`
	RedName         string          `db:"red_name" json:"red_name"`
	BlueName        string          `db:"blue_name" json:"blue_name"`
	Winner          string          `db:"winner" json:"winner"`
	WinnerCorner    Corner          `db:"winner_corner" json:"winner_corner"`
	ProbabilityRed  float64         `db:"probability_red" json:"probability_red"`
	ProbabilityBlue float64         `db:"probability_blue" json:"probability_blue"`
	Confidence      decimal.Decimal `db:"confidence" json:"confidence"`
	PredictedAt     time.Time       `db:"predicted_at" json:"predicted_at"`
}

// NewPredictionRecord captures an outcome produced by the given model version
func NewPredictionRecord(outcome *Outcome, modelVersion string, at time.Time) *PredictionRecord {
	return &PredictionRecord{
		ID:              uuid.New(),
		ModelVersion:    modelVersion,
		RedName:         outcome.RedName,
		BlueName:        outcome.BlueName,
		Winner:          outcome.Winner,
		WinnerCorner:    outcome.WinnerCorner,
		ProbabilityRed:  outcome.ProbabilityRed,
		ProbabilityBlue: outcome.ProbabilityBlue,
		Confidence:      outcome.Confidence,
		PredictedAt:     at,
	}
}
