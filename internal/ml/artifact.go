package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/fight-predictor/internal/features"
)

const (
	artifactFormatVersion = 1

	// KindScaler marks a persisted StandardScaler.
	KindScaler = "standard_scaler"
	// KindLogisticRegression marks a persisted LogisticRegression.
	KindLogisticRegression = "logistic_regression"
)

// ArtifactInfo is the metadata header shared by every persisted artifact.
type ArtifactInfo struct {
	Kind          string    `json:"kind"`
	FormatVersion int       `json:"format_version"`
	FeatureNames  []string  `json:"feature_names"`
	TrainedAt     time.Time `json:"trained_at"`
}

type artifactDocument struct {
	ArtifactInfo
	Params json.RawMessage `json:"params"`
}

type scalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type classifierParams struct {
	Weights    []float64                `json:"weights"`
	Intercept  float64                  `json:"intercept"`
	Iterations int                      `json:"iterations"`
	Config     LogisticRegressionConfig `json:"config"`
}

// SaveScaler persists a fitted scaler at path.
func SaveScaler(path string, s *StandardScaler, trainedAt time.Time) error {
	if !s.Fitted() {
		return fmt.Errorf("%w: %v", ErrArtifactSave, ErrNotFitted)
	}
	return saveArtifact(path, KindScaler, trainedAt, scalerParams{Mean: s.Mean, Scale: s.Scale})
}

// LoadScaler reads a scaler written by SaveScaler.
func LoadScaler(path string) (*StandardScaler, error) {
	var params scalerParams
	if _, err := loadArtifact(path, KindScaler, &params); err != nil {
		return nil, err
	}
	if len(params.Mean) != features.Dim || len(params.Scale) != features.Dim {
		return nil, fmt.Errorf("%w: %s: scaler has %d/%d parameters, want %d",
			ErrArtifactLoad, path, len(params.Mean), len(params.Scale), features.Dim)
	}
	for j, sc := range params.Scale {
		if sc == 0 {
			return nil, fmt.Errorf("%w: %s: zero scale for feature %s", ErrArtifactLoad, path, features.Names[j])
		}
	}
	return &StandardScaler{Mean: params.Mean, Scale: params.Scale}, nil
}

// SaveClassifier persists a fitted logistic regression model at path.
func SaveClassifier(path string, m *LogisticRegression, trainedAt time.Time) error {
	if !m.Fitted() {
		return fmt.Errorf("%w: %v", ErrArtifactSave, ErrNotFitted)
	}
	return saveArtifact(path, KindLogisticRegression, trainedAt, classifierParams{
		Weights:    m.Weights,
		Intercept:  m.Intercept,
		Iterations: m.Iterations,
		Config:     m.Config,
	})
}

// LoadClassifier reads a model written by SaveClassifier.
func LoadClassifier(path string) (*LogisticRegression, error) {
	var params classifierParams
	if _, err := loadArtifact(path, KindLogisticRegression, &params); err != nil {
		return nil, err
	}
	if len(params.Weights) != features.Dim {
		return nil, fmt.Errorf("%w: %s: classifier has %d weights, want %d",
			ErrArtifactLoad, path, len(params.Weights), features.Dim)
	}
	return &LogisticRegression{
		Weights:    params.Weights,
		Intercept:  params.Intercept,
		Iterations: params.Iterations,
		Config:     params.Config,
	}, nil
}

// ReadArtifactInfo returns the metadata header of an artifact without validating its parameters.
func ReadArtifactInfo(path string) (*ArtifactInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactLoad, err)
	}
	var doc artifactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactLoad, path, err)
	}
	return &doc.ArtifactInfo, nil
}

func saveArtifact(path, kind string, trainedAt time.Time, params interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactSave, err)
	}
	doc := artifactDocument{
		ArtifactInfo: ArtifactInfo{
			Kind:          kind,
			FormatVersion: artifactFormatVersion,
			FeatureNames:  features.Names,
			TrainedAt:     trainedAt.UTC(),
		},
		Params: raw,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactSave, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArtifactSave, path, err)
	}
	return nil
}

func loadArtifact(path, kind string, params interface{}) (*ArtifactInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactLoad, err)
	}

	var doc artifactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactLoad, path, err)
	}
	if doc.Kind != kind {
		return nil, fmt.Errorf("%w: %s: kind %q, want %q", ErrArtifactLoad, path, doc.Kind, kind)
	}
	if doc.FormatVersion != artifactFormatVersion {
		return nil, fmt.Errorf("%w: %s: unsupported format version %d", ErrArtifactLoad, path, doc.FormatVersion)
	}
	if !features.SameSchema(doc.FeatureNames) {
		return nil, fmt.Errorf("%w: %s: feature names %v do not match %v",
			ErrArtifactLoad, path, doc.FeatureNames, features.Names)
	}
	if len(doc.Params) == 0 {
		return nil, fmt.Errorf("%w: %s: missing params", ErrArtifactLoad, path)
	}
	if err := json.Unmarshal(doc.Params, params); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactLoad, path, err)
	}
	return &doc.ArtifactInfo, nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it into place, so readers never observe a partial artifact.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
