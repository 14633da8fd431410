package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/models"
)

func newModel(name, version string) *models.Model {
	return &models.Model{
		ID:              uuid.New(),
		Name:            name,
		Version:         version,
		ModelType:       "logistic_regression",
		Path:            "artifacts/model.json",
		ScalerPath:      "artifacts/scaler.json",
		Hyperparameters: json.RawMessage(`{"c":1}`),
		Metrics:         json.RawMessage(`{"accuracy":0.61}`),
		TrainedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestWrapWriteError(t *testing.T) {
	err := wrapWriteError("create model", &pgconn.PgError{Code: uniqueViolation})
	assert.True(t, errors.Is(err, models.ErrDuplicateKey))

	err = wrapWriteError("create model", errors.New("connection reset"))
	assert.False(t, errors.Is(err, models.ErrDuplicateKey))
	assert.Contains(t, err.Error(), "connection reset")
}

// TestModelRepositoryLifecycle tests create, activate and lookup against a live database
func TestModelRepositoryLifecycle(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := newModel("fight_predictor", "v1")
	second := newModel("fight_predictor", "v2")
	require.NoError(t, repos.Model.Create(ctx, first))
	require.NoError(t, repos.Model.Create(ctx, second))

	err = repos.Model.Create(ctx, newModel("fight_predictor", "v1"))
	assert.True(t, errors.Is(err, models.ErrDuplicateKey))

	require.NoError(t, repos.Model.SetActive(ctx, first.ID))
	require.NoError(t, repos.Model.SetActive(ctx, second.ID))

	active, err := repos.Model.GetActive(ctx, "fight_predictor")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, second.ScalerPath, active.ScalerPath)

	previous, err := repos.Model.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, previous.Active)

	list, err := repos.Model.List(ctx, "fight_predictor", 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = repos.Model.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

// TestPredictionRepositoryInsert tests the prediction log against a live database
func TestPredictionRepositoryInsert(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := models.NewPredictionRecord(&models.Outcome{
		RedName:         "fighter x",
		BlueName:        "fighter y",
		Winner:          "fighter x",
		WinnerCorner:    models.CornerRed,
		ProbabilityRed:  0.7,
		ProbabilityBlue: 0.3,
		Confidence:      decimal.RequireFromString("70.00"),
	}, "v1", time.Now().UTC().Truncate(time.Microsecond))

	require.NoError(t, repos.Prediction.Insert(ctx, record))

	recent, err := repos.Prediction.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, record.ID, recent[0].ID)
	assert.Equal(t, models.CornerRed, recent[0].WinnerCorner)
	assert.True(t, record.Confidence.Equal(recent[0].Confidence))
}
