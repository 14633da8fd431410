package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/models"
	"github.com/yourusername/fight-predictor/internal/store"
)

// datasetLoader serves the same artifacts over whatever rows it currently holds
type datasetLoader struct {
	rows []models.FightRow
	err  error
}

func (l *datasetLoader) load(ctx context.Context) (Model, error) {
	if l.err != nil {
		return Model{}, l.err
	}
	base := testModel()
	return Model{
		Store:              store.New(l.rows),
		Scaler:             base.Scaler,
		Classifier:         base.Classifier,
		Version:            base.Version,
		DatasetFingerprint: dataset.Fingerprint(l.rows),
	}, nil
}

func newDatasetLoader() *datasetLoader {
	return &datasetLoader{rows: []models.FightRow{
		fight(0, stats("fighter x", 10, 0), stats("fighter y", 5, 5)),
		fight(1, stats("other", 1, 1), stats("someone", 3, 3)),
	}}
}

func TestReloaderServesInitialModel(t *testing.T) {
	loader := newDatasetLoader()
	r, err := NewReloader(context.Background(), loader.load, nil, quietLogger())
	require.NoError(t, err)

	outcome, err := r.PredictFight(context.Background(), "fighter x", "fighter y")
	require.NoError(t, err)
	assert.Equal(t, models.CornerRed, outcome.WinnerCorner)
	assert.Equal(t, []string{"fighter x", "fighter y", "other", "someone"}, r.Fighters())
}

func TestReloaderInvalidatesCacheWhenDatasetChanges(t *testing.T) {
	ctx := context.Background()
	cache := ml.NewPredictionCache(time.Hour, 100)
	loader := newDatasetLoader()

	r, err := NewReloader(ctx, loader.load, cache, quietLogger())
	require.NoError(t, err)
	before := r.Current().CacheScope()

	outcome, err := r.PredictFight(ctx, "fighter x", "fighter y")
	require.NoError(t, err)
	assert.Equal(t, "fighter x", outcome.Winner)
	assert.Equal(t, 1, cache.ItemCount())

	// same artifacts, new fighter records
	loader.rows = []models.FightRow{
		fight(0, stats("fighter x", 0, 10), stats("fighter y", 5, 5)),
		fight(1, stats("other", 1, 1), stats("someone", 3, 3)),
	}
	require.NoError(t, r.Reload(ctx))

	assert.Equal(t, "test", r.Current().Version())
	assert.NotEqual(t, before, r.Current().CacheScope())
	assert.Equal(t, 0, cache.ItemCount())

	outcome, err = r.PredictFight(ctx, "fighter x", "fighter y")
	require.NoError(t, err)
	assert.Equal(t, "fighter y", outcome.Winner)
	assert.Equal(t, models.CornerBlue, outcome.WinnerCorner)
}

func TestReloaderKeepsCacheWhenNothingChanged(t *testing.T) {
	ctx := context.Background()
	cache := ml.NewPredictionCache(time.Hour, 100)
	loader := newDatasetLoader()

	r, err := NewReloader(ctx, loader.load, cache, quietLogger())
	require.NoError(t, err)

	_, err = r.PredictFight(ctx, "fighter x", "fighter y")
	require.NoError(t, err)
	require.NoError(t, r.Reload(ctx))

	assert.Equal(t, 1, cache.ItemCount())
	_, err = r.PredictFight(ctx, "fighter x", "fighter y")
	require.NoError(t, err)
	hits, _, _ := cache.Stats()
	assert.Equal(t, uint64(1), hits)
}

func TestReloaderKeepsPreviousModelOnFailure(t *testing.T) {
	ctx := context.Background()
	loader := newDatasetLoader()
	r, err := NewReloader(ctx, loader.load, nil, quietLogger())
	require.NoError(t, err)
	previous := r.Current()

	loader.err = ml.ErrArtifactLoad
	err = r.Reload(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ml.ErrArtifactLoad))
	assert.Same(t, previous, r.Current())

	_, err = r.PredictFight(ctx, "fighter x", "fighter y")
	assert.NoError(t, err)
}

func TestNewReloaderFailsWithoutModel(t *testing.T) {
	loader := &datasetLoader{err: ml.ErrArtifactLoad}
	_, err := NewReloader(context.Background(), loader.load, nil, quietLogger())
	assert.ErrorIs(t, err, ml.ErrArtifactLoad)

	_, err = NewReloader(context.Background(), nil, nil, quietLogger())
	assert.Error(t, err)
}
