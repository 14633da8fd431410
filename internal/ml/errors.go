package ml

import "errors"

var (
	// ErrArtifactLoad indicates a persisted scaler or classifier could not be loaded
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrArtifactSave indicates an artifact could not be written
	ErrArtifactSave = errors.New("artifact save failed")

	// ErrNotFitted indicates a scaler or classifier was used before fitting
	ErrNotFitted = errors.New("estimator not fitted")

	// ErrDimensionMismatch indicates an input vector of the wrong width
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyTrainingSet indicates there are no samples to fit on
	ErrEmptyTrainingSet = errors.New("empty training set")

	// ErrSingleClass indicates the training labels contain only one class
	ErrSingleClass = errors.New("training labels contain a single class")

	// ErrInvalidSplit indicates a train/test split that leaves a partition empty
	ErrInvalidSplit = errors.New("invalid train/test split")
)
