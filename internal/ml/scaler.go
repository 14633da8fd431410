// Package ml holds the in-process estimators behind fight predictions: a
// standardizing scaler, a logistic regression classifier, their persisted
// artifacts, evaluation helpers and the prediction cache.
package ml

import (
	"fmt"
	"math"
)

// StandardScaler standardizes each feature as (x - mean) / std.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit learns the per-feature mean and population standard deviation.
// A feature with zero variance is scaled by 1.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return ErrEmptyTrainingSet
	}
	dim := len(X[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-width rows", ErrDimensionMismatch)
	}

	mean := make([]float64, dim)
	for i, row := range X {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(X))
	for j := range mean {
		mean[j] /= n
	}

	scale := make([]float64, dim)
	for _, row := range X {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	s.Mean = mean
	s.Scale = scale
	return nil
}

// Fitted reports whether Fit has produced usable parameters.
func (s *StandardScaler) Fitted() bool {
	return s != nil && len(s.Mean) > 0 && len(s.Mean) == len(s.Scale)
}

// Transform standardizes a single vector. The input is not modified.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(x), len(s.Mean))
	}

	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// TransformAll standardizes every row of X.
func (s *StandardScaler) TransformAll(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}
