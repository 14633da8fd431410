package ml

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluation summarizes classifier quality on a held-out partition.
type Evaluation struct {
	Accuracy float64
	// Confusion is indexed [actual][predicted].
	Confusion [2][2]int
	Samples   int
}

// Evaluate compares true and predicted labels.
func Evaluate(yTrue, yPred []int) (Evaluation, error) {
	if len(yTrue) != len(yPred) {
		return Evaluation{}, fmt.Errorf("%w: %d true labels, %d predictions", ErrDimensionMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return Evaluation{}, ErrEmptyTrainingSet
	}

	var ev Evaluation
	correct := 0
	for i := range yTrue {
		actual, predicted := yTrue[i], yPred[i]
		if actual < 0 || actual > 1 || predicted < 0 || predicted > 1 {
			return Evaluation{}, fmt.Errorf("non-binary label at index %d", i)
		}
		ev.Confusion[actual][predicted]++
		if actual == predicted {
			correct++
		}
	}
	ev.Samples = len(yTrue)
	ev.Accuracy = float64(correct) / float64(ev.Samples)
	return ev, nil
}

// FormatConfusion renders the matrix as a right-aligned nested list.
func (e Evaluation) FormatConfusion() string {
	width := 1
	for _, row := range e.Confusion {
		for _, v := range row {
			if l := len(strconv.Itoa(v)); l > width {
				width = l
			}
		}
	}

	var b strings.Builder
	b.WriteString("[")
	for i, row := range e.Confusion {
		if i > 0 {
			b.WriteString("\n ")
		}
		fmt.Fprintf(&b, "[%*d %*d]", width, row[0], width, row[1])
	}
	b.WriteString("]")
	return b.String()
}

// String renders accuracy to three decimals followed by the confusion matrix.
func (e Evaluation) String() string {
	return fmt.Sprintf("Accuracy: %.3f\nConfusion Matrix:\n%s", e.Accuracy, e.FormatConfusion())
}
