package ml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable data: label 1 when the first feature is positive
func separableData() ([][]float64, []int) {
	X := [][]float64{
		{-2, 0.5}, {-1.5, -0.3}, {-1, 0.1}, {-0.5, -0.2},
		{0.5, 0.2}, {1, -0.1}, {1.5, 0.3}, {2, -0.4},
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

func TestLogisticRegressionFit(t *testing.T) {
	X, y := separableData()
	m := NewLogisticRegression(DefaultLogisticRegressionConfig())
	require.NoError(t, m.Fit(X, y))

	assert.True(t, m.Fitted())
	assert.Greater(t, m.Weights[0], 0.0)

	for i, row := range X {
		label, err := m.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, y[i], label, "row %d", i)
	}
}

func TestLogisticRegressionDeterministic(t *testing.T) {
	X, y := separableData()

	a := NewLogisticRegression(DefaultLogisticRegressionConfig())
	b := NewLogisticRegression(DefaultLogisticRegressionConfig())
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Intercept, b.Intercept)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestLogisticRegressionProbabilities(t *testing.T) {
	X, y := separableData()
	m := NewLogisticRegression(DefaultLogisticRegressionConfig())
	require.NoError(t, m.Fit(X, y))

	for _, row := range [][]float64{{3, 0}, {-3, 0}, {0, 0}, {100, 100}, {-100, -100}} {
		proba, err := m.PredictProba(row)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)
		assert.GreaterOrEqual(t, proba[0], 0.0)
		assert.GreaterOrEqual(t, proba[1], 0.0)

		label, err := m.Predict(row)
		require.NoError(t, err)
		if proba[1] > 0.5 {
			assert.Equal(t, 1, label)
		} else if proba[1] < 0.5 {
			assert.Equal(t, 0, label)
		}
	}
}

func TestLogisticRegressionTiePredictsZero(t *testing.T) {
	m := &LogisticRegression{Weights: []float64{1, -1}, Intercept: 0}

	label, err := m.Predict([]float64{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	proba, err := m.PredictProba([]float64{2, 2})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.5, 0.5}, proba)
}

func TestLogisticRegressionRegularization(t *testing.T) {
	X, y := separableData()

	loose := NewLogisticRegression(LogisticRegressionConfig{C: 100})
	tight := NewLogisticRegression(LogisticRegressionConfig{C: 0.01})
	require.NoError(t, loose.Fit(X, y))
	require.NoError(t, tight.Fit(X, y))

	assert.Greater(t, loose.Weights[0], tight.Weights[0])
}

func TestLogisticRegressionErrors(t *testing.T) {
	m := NewLogisticRegression(LogisticRegressionConfig{})

	_, err := m.Predict([]float64{1, 2})
	assert.True(t, errors.Is(err, ErrNotFitted))

	assert.True(t, errors.Is(m.Fit(nil, nil), ErrEmptyTrainingSet))
	assert.True(t, errors.Is(m.Fit([][]float64{{1}, {2}}, []int{1}), ErrDimensionMismatch))
	assert.True(t, errors.Is(m.Fit([][]float64{{1}, {2}}, []int{1, 1}), ErrSingleClass))
	assert.Error(t, m.Fit([][]float64{{1}, {2}}, []int{0, 2}))

	X, y := separableData()
	require.NoError(t, m.Fit(X, y))
	_, err = m.PredictProba([]float64{1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestNewLogisticRegressionDefaults(t *testing.T) {
	m := NewLogisticRegression(LogisticRegressionConfig{MaxIterations: 10})

	assert.Equal(t, 10, m.Config.MaxIterations)
	assert.Equal(t, 1.0, m.Config.C)
	assert.Equal(t, 0.5, m.Config.LearningRate)
	assert.Equal(t, 1e-6, m.Config.Tolerance)
}

func TestSigmoidStable(t *testing.T) {
	assert.Equal(t, 0.5, sigmoid(0))
	assert.InDelta(t, 1.0, sigmoid(800), 1e-12)
	assert.InDelta(t, 0.0, sigmoid(-800), 1e-12)
	assert.InDelta(t, 1.0, sigmoid(3)+sigmoid(-3), 1e-15)
}
