package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultSplitSeed is the seed of the reproducible train/test shuffle.
const DefaultSplitSeed int64 = 67

// DefaultTestSize is the fraction of rows held out for evaluation.
const DefaultTestSize = 0.2

// TrainTestSplit shuffles the indices 0..n-1 with a seeded generator and
// returns disjoint train and test index sets. The test set holds
// ceil(testSize*n) indices. Identical inputs always give identical output.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("%w: test size %v outside (0, 1)", ErrInvalidSplit, testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, fmt.Errorf("%w: %d rows cannot be split with test size %v", ErrInvalidSplit, n, testSize)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}
