package models

import (
	"github.com/shopspring/decimal"
)

// Outcome is the rendered result of a single fight prediction
type Outcome struct {
	RedName         string          `json:"red"`
	BlueName        string          `json:"blue"`
	Winner          string          `json:"winner"`
	WinnerCorner    Corner          `json:"winner_corner"`
	Label           int             `json:"label"`
	ProbabilityRed  float64         `json:"probability_red"`
	ProbabilityBlue float64         `json:"probability_blue"`
	Confidence      decimal.Decimal `json:"confidence"`
	Message         string          `json:"message"`
}

