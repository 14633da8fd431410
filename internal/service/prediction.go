package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/features"
	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/metrics"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/models"
	"github.com/yourusername/fight-predictor/internal/repository"
)

// PredictionService answers "who wins" for a red/blue pairing. It holds no
// mutable state besides the optional cache, so it is safe for concurrent use.
type PredictionService struct {
	model    Model
	cache    *ml.PredictionCache
	recorder repository.PredictionRepository
	logger   *logger.PredictionLogger
}

// PredictionOption configures optional collaborators
type PredictionOption func(*PredictionService)

// WithCache memoizes outcomes per fighter pair
func WithCache(cache *ml.PredictionCache) PredictionOption {
	return func(s *PredictionService) { s.cache = cache }
}

// WithRecorder stores every served prediction
func WithRecorder(recorder repository.PredictionRepository) PredictionOption {
	return func(s *PredictionService) { s.recorder = recorder }
}

// NewPredictionService creates a prediction service over a loaded model
func NewPredictionService(model Model, log *logrus.Logger, opts ...PredictionOption) (*PredictionService, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &PredictionService{
		model:  model,
		logger: logger.NewPredictionLogger(log),
	}
	for _, opt := range opts {
		opt(s)
	}

	fighters := model.Store.Fighters()
	metrics.UpdateRecordStore(model.Store.Len(), len(fighters))
	return s, nil
}

// Version returns the version of the served model
func (s *PredictionService) Version() string {
	return s.model.Version
}

// CacheScope returns the cache key prefix of the served model and records
func (s *PredictionService) CacheScope() string {
	return s.model.CacheScope()
}

// Fighters returns every known fighter name, sorted and deduplicated
func (s *PredictionService) Fighters() []string {
	return s.model.Store.Fighters()
}

// PredictFight normalizes both names, resolves the red corner then the blue
// corner, and classifies the matchup. Failures are *models.InvalidInputError
// or *models.FighterNotFoundError.
func (s *PredictionService) PredictFight(ctx context.Context, red, blue string) (*models.Outcome, error) {
	start := time.Now()

	redName := dataset.NormalizeName(red)
	blueName := dataset.NormalizeName(blue)
	if redName == "" {
		return nil, s.reject(&models.InvalidInputError{Field: string(models.CornerRed), Reason: "fighter name is required"})
	}
	if blueName == "" {
		return nil, s.reject(&models.InvalidInputError{Field: string(models.CornerBlue), Reason: "fighter name is required"})
	}

	key := ml.CacheKey{Scope: s.model.CacheScope(), Red: redName, Blue: blueName}
	if s.cache != nil {
		if outcome := s.cache.Get(ctx, key); outcome != nil {
			s.observe(outcome, true, time.Since(start))
			return outcome, nil
		}
	}

	redStats, err := s.model.Store.Resolve(redName, models.CornerRed)
	if err != nil {
		return nil, s.reject(err)
	}
	blueStats, err := s.model.Store.Resolve(blueName, models.CornerBlue)
	if err != nil {
		return nil, s.reject(err)
	}

	outcome, err := s.classify(redName, blueName, features.Build(redStats, blueStats))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, outcome)
	}
	if s.recorder != nil {
		if err := s.recorder.Insert(ctx, models.NewPredictionRecord(outcome, s.model.Version, time.Now().UTC())); err != nil {
			s.logger.WithError(err).Warn("Failed to record prediction")
		}
	}

	s.observe(outcome, false, time.Since(start))
	return outcome, nil
}

func (s *PredictionService) classify(redName, blueName string, vec features.Vector) (*models.Outcome, error) {
	scaled, err := s.model.Scaler.Transform(vec.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to scale features: %w", err)
	}
	proba, err := s.model.Classifier.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("failed to classify: %w", err)
	}
	label, err := s.model.Classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("failed to classify: %w", err)
	}

	outcome := &models.Outcome{
		RedName:         redName,
		BlueName:        blueName,
		Label:           label,
		ProbabilityRed:  proba[1],
		ProbabilityBlue: proba[0],
	}
	if label == 1 {
		outcome.Winner, outcome.WinnerCorner = redName, models.CornerRed
	} else {
		outcome.Winner, outcome.WinnerCorner = blueName, models.CornerBlue
	}

	outcome.Confidence = confidencePercent(proba)
	outcome.Message = fmt.Sprintf("%s will likely win (%s%% confidence)",
		titleCase(outcome.Winner), formatConfidence(outcome.Confidence))
	return outcome, nil
}

// confidencePercent is max(p0, p1) * 100 rounded to two places. Rounding
// works on the exact binary value and sends exact ties to even, so 71.125
// becomes 71.12 while 83.33500000000001 becomes 83.34.
func confidencePercent(proba [2]float64) decimal.Decimal {
	p := proba[0]
	if proba[1] > p {
		p = proba[1]
	}
	// a float64 in [0, 100] has at most 52 fractional binary digits, so 64 decimal places are exact
	exact := new(big.Float).SetFloat64(p * 100).Text('f', 64)
	return decimal.RequireFromString(exact).RoundBank(2)
}

// formatConfidence renders at least one fractional digit: 75 -> "75.0", 71.25 -> "71.25"
func formatConfidence(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (s *PredictionService) reject(err error) error {
	var notFound *models.FighterNotFoundError
	var invalid *models.InvalidInputError
	switch {
	case errors.As(err, &notFound):
		metrics.RecordPredictionError("not_found", string(notFound.Side))
		s.logger.LogPredictionRejected("not_found", notFound.Side, notFound.Name, err)
	case errors.As(err, &invalid):
		metrics.RecordPredictionError("invalid_input", invalid.Field)
		s.logger.LogPredictionRejected("invalid_input", models.Corner(invalid.Field), "", err)
	}
	return err
}

func (s *PredictionService) observe(outcome *models.Outcome, cacheHit bool, latency time.Duration) {
	confidence, _ := outcome.Confidence.Float64()
	metrics.RecordPrediction(string(outcome.WinnerCorner), confidence, latency.Seconds())
	s.logger.LogPrediction(outcome, cacheHit, latency)
}
