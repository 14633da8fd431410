package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// TrainingLogger provides dedicated logging for training runs.
type TrainingLogger struct {
	*logrus.Entry
}

// NewTrainingLogger creates a new training logger.
func NewTrainingLogger(baseLogger *logrus.Logger) *TrainingLogger {
	return &TrainingLogger{
		Entry: baseLogger.WithField("component", "training"),
	}
}

// LogDatasetPrepared logs the dataset after title-fight filtering.
func (tl *TrainingLogger) LogDatasetPrepared(source string, totalRows, titleFightsExcluded, samples int) {
	tl.WithFields(logrus.Fields{
		"source":                source,
		"total_rows":            totalRows,
		"title_fights_excluded": titleFightsExcluded,
		"samples":               samples,
	}).Info("Training dataset prepared")
}

// LogSplit logs the train/test partition.
func (tl *TrainingLogger) LogSplit(trainSamples, testSamples int, seed int64) {
	tl.WithFields(logrus.Fields{
		"train_samples": trainSamples,
		"test_samples":  testSamples,
		"seed":          seed,
	}).Info("Dataset split")
}

// LogTrainingCompleted logs the evaluation of a finished run.
func (tl *TrainingLogger) LogTrainingCompleted(version string, accuracy float64, iterations int, duration time.Duration) {
	tl.WithFields(logrus.Fields{
		"version":     version,
		"accuracy":    accuracy,
		"iterations":  iterations,
		"duration_ms": duration.Milliseconds(),
	}).Info("Model training completed")
}

// LogArtifactsSaved logs the persisted artifact paths.
func (tl *TrainingLogger) LogArtifactsSaved(scalerPath, modelPath string) {
	tl.WithFields(logrus.Fields{
		"scaler_path": scalerPath,
		"model_path":  modelPath,
	}).Info("Artifacts saved")
}

// LogTrainingFailed logs a failed run.
func (tl *TrainingLogger) LogTrainingFailed(stage string, err error) {
	tl.WithFields(logrus.Fields{
		"stage": stage,
		"error": err,
	}).Error("Model training failed")
}
