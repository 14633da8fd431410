package ml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1, 0, 1, 1}
	yPred := []int{1, 0, 0, 1, 1, 0, 1, 0}

	ev, err := Evaluate(yTrue, yPred)
	require.NoError(t, err)

	assert.Equal(t, 8, ev.Samples)
	assert.Equal(t, 5.0/8.0, ev.Accuracy)
	assert.Equal(t, [2][2]int{{2, 1}, {2, 3}}, ev.Confusion)
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate([]int{1}, []int{1, 0})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Evaluate(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyTrainingSet))

	_, err = Evaluate([]int{2}, []int{1})
	assert.Error(t, err)
}

func TestEvaluationString(t *testing.T) {
	ev := Evaluation{Accuracy: 0.61234, Confusion: [2][2]int{{120, 7}, {95, 1480}}, Samples: 1702}

	assert.Equal(t, "[[ 120    7]\n [  95 1480]]", ev.FormatConfusion())
	assert.Equal(t, "Accuracy: 0.612\nConfusion Matrix:\n[[ 120    7]\n [  95 1480]]", ev.String())
}
