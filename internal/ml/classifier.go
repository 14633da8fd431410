package ml

import (
	"fmt"
	"math"
)

// Classifier is a fitted binary classifier. Label 1 means the red corner is favoured.
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([2]float64, error)
}

// LogisticRegressionConfig holds the training hyperparameters.
type LogisticRegressionConfig struct {
	// C is the inverse L2 regularization strength.
	C             float64 `json:"c"`
	LearningRate  float64 `json:"learning_rate"`
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
}

// DefaultLogisticRegressionConfig returns the default hyperparameters.
func DefaultLogisticRegressionConfig() LogisticRegressionConfig {
	return LogisticRegressionConfig{
		C:             1.0,
		LearningRate:  0.5,
		MaxIterations: 5000,
		Tolerance:     1e-6,
	}
}

// LogisticRegression is an L2-regularized binary logistic regression model.
type LogisticRegression struct {
	Weights    []float64
	Intercept  float64
	Iterations int
	Config     LogisticRegressionConfig
}

// NewLogisticRegression creates an unfitted model, filling unset fields of cfg with defaults.
func NewLogisticRegression(cfg LogisticRegressionConfig) *LogisticRegression {
	def := DefaultLogisticRegressionConfig()
	if cfg.C <= 0 {
		cfg.C = def.C
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	return &LogisticRegression{Config: cfg}
}

// Fit minimizes mean log-loss plus ||w||^2 / (2*C*n) by full-batch gradient
// descent starting from zero weights, so the result depends only on the data.
// The intercept is not regularized.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d samples but %d labels", ErrDimensionMismatch, len(X), len(y))
	}
	dim := len(X[0])
	var positives int
	for i, row := range X {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
		switch y[i] {
		case 0:
		case 1:
			positives++
		default:
			return fmt.Errorf("label %d at row %d is not 0 or 1", y[i], i)
		}
	}
	if positives == 0 || positives == len(y) {
		return ErrSingleClass
	}

	n := float64(len(X))
	w := make([]float64, dim)
	grad := make([]float64, dim)
	var b float64
	lambda := 1 / (m.Config.C * n)
	step := stepSize(X, lambda, m.Config.LearningRate)

	iter := 0
	for iter < m.Config.MaxIterations {
		iter++
		for j := range grad {
			grad[j] = 0
		}
		var gradB float64

		for i, row := range X {
			residual := sigmoid(dot(w, row)+b) - float64(y[i])
			for j, v := range row {
				grad[j] += residual * v
			}
			gradB += residual
		}

		maxGrad := math.Abs(gradB / n)
		for j := range grad {
			grad[j] = grad[j]/n + lambda*w[j]
			if g := math.Abs(grad[j]); g > maxGrad {
				maxGrad = g
			}
		}
		if maxGrad < m.Config.Tolerance {
			break
		}

		for j := range w {
			w[j] -= step * grad[j]
		}
		b -= step * gradB / n
	}

	m.Weights = w
	m.Intercept = b
	m.Iterations = iter
	return nil
}

// Fitted reports whether the model has weights.
func (m *LogisticRegression) Fitted() bool {
	return m != nil && len(m.Weights) > 0
}

// DecisionFunction returns the signed distance w.x + b.
func (m *LogisticRegression) DecisionFunction(x []float64) (float64, error) {
	if !m.Fitted() {
		return 0, ErrNotFitted
	}
	if len(x) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(x), len(m.Weights))
	}
	return dot(m.Weights, x) + m.Intercept, nil
}

// Predict returns 1 when the decision value is strictly positive, else 0.
func (m *LogisticRegression) Predict(x []float64) (int, error) {
	z, err := m.DecisionFunction(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns [P(label 0), P(label 1)].
func (m *LogisticRegression) PredictProba(x []float64) ([2]float64, error) {
	z, err := m.DecisionFunction(x)
	if err != nil {
		return [2]float64{}, err
	}
	p1 := sigmoid(z)
	return [2]float64{1 - p1, p1}, nil
}

// stepSize caps the learning rate at 1/L, where L bounds the curvature of the
// regularized log-loss: 0.25 * mean(||x||^2 + 1) + lambda.
func stepSize(X [][]float64, lambda, learningRate float64) float64 {
	var sq float64
	for _, row := range X {
		sq += dot(row, row) + 1
	}
	L := 0.25*sq/float64(len(X)) + lambda
	if L > 0 && 1/L < learningRate {
		return 1 / L
	}
	return learningRate
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
