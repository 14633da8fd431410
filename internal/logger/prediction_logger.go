package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/models"
)

// PredictionLogger provides dedicated logging for the inference path.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogModelLoaded logs the artifacts and record store a service was built from.
func (pl *PredictionLogger) LogModelLoaded(scalerPath, modelPath string, rows, fighters int) {
	pl.WithFields(logrus.Fields{
		"scaler_path": scalerPath,
		"model_path":  modelPath,
		"rows":        rows,
		"fighters":    fighters,
	}).Info("Prediction model loaded")
}

// LogPrediction logs a completed prediction.
func (pl *PredictionLogger) LogPrediction(outcome *models.Outcome, cacheHit bool, latency time.Duration) {
	pl.WithFields(logrus.Fields{
		"red":              outcome.RedName,
		"blue":             outcome.BlueName,
		"winner":           outcome.Winner,
		"winner_corner":    outcome.WinnerCorner,
		"probability_red":  outcome.ProbabilityRed,
		"probability_blue": outcome.ProbabilityBlue,
		"confidence":       outcome.Confidence.String(),
		"cache_hit":        cacheHit,
		"latency_us":       latency.Microseconds(),
	}).Debug("Prediction completed")
}

// LogPredictionRejected logs a prediction request that could not be served.
func (pl *PredictionLogger) LogPredictionRejected(reason string, side models.Corner, name string, err error) {
	pl.WithFields(logrus.Fields{
		"reason": reason,
		"side":   side,
		"name":   name,
		"error":  err,
	}).Info("Prediction rejected")
}
