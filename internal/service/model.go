// Package service wires the record store, scaler and classifier into the
// fight prediction orchestrator and runs the offline training routine.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/store"
)

// Model is the immutable state a PredictionService serves from
type Model struct {
	Store      *store.RecordStore
	Scaler     *ml.StandardScaler
	Classifier ml.Classifier
	// Version identifies the artifacts.
	Version string
	// DatasetFingerprint identifies the fighter records the store was built from.
	DatasetFingerprint string
}

// CacheScope keys cached outcomes: a change to either the artifacts or the
// fighter records starts a new scope.
func (m Model) CacheScope() string {
	if m.DatasetFingerprint == "" {
		return m.Version
	}
	return m.Version + "@" + m.DatasetFingerprint
}

// Validate checks that every component is present
func (m Model) Validate() error {
	if m.Store == nil {
		return fmt.Errorf("model: record store is required")
	}
	if !m.Scaler.Fitted() {
		return fmt.Errorf("model: %w", ml.ErrNotFitted)
	}
	if m.Classifier == nil {
		return fmt.Errorf("model: classifier is required")
	}
	return nil
}

// VersionFromTime renders an artifact training timestamp as a model version
func VersionFromTime(t time.Time) string {
	return t.UTC().Format("20060102T150405.000Z")
}

// LoadModel loads the dataset and both artifacts named by cfg. Artifact
// failures wrap ml.ErrArtifactLoad.
func LoadModel(ctx context.Context, cfg *config.Config, client *dataset.RateLimitedHTTPClient, log *logrus.Logger) (Model, error) {
	rows, err := dataset.Load(ctx, dataset.NewSource(cfg.Dataset.Path, client), log)
	if err != nil {
		return Model{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	scaler, err := ml.LoadScaler(cfg.Artifacts.ScalerPath)
	if err != nil {
		return Model{}, err
	}
	classifier, err := ml.LoadClassifier(cfg.Artifacts.ModelPath)
	if err != nil {
		return Model{}, err
	}
	info, err := ml.ReadArtifactInfo(cfg.Artifacts.ModelPath)
	if err != nil {
		return Model{}, err
	}
	scalerInfo, err := ml.ReadArtifactInfo(cfg.Artifacts.ScalerPath)
	if err != nil {
		return Model{}, err
	}
	// both artifacts of one run carry the same trained_at
	if !scalerInfo.TrainedAt.Equal(info.TrainedAt) {
		return Model{}, fmt.Errorf("%w: scaler trained at %s but classifier trained at %s",
			ml.ErrArtifactLoad, scalerInfo.TrainedAt.Format(time.RFC3339Nano), info.TrainedAt.Format(time.RFC3339Nano))
	}

	return Model{
		Store:              store.New(rows),
		Scaler:             scaler,
		Classifier:         classifier,
		Version:            VersionFromTime(info.TrainedAt),
		DatasetFingerprint: dataset.Fingerprint(rows),
	}, nil
}
