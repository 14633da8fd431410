package ml

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fight-predictor/internal/models"
)

func sampleOutcome() *models.Outcome {
	return &models.Outcome{
		RedName:         "fighter x",
		BlueName:        "fighter y",
		Winner:          "fighter x",
		WinnerCorner:    models.CornerRed,
		Label:           1,
		ProbabilityRed:  0.75,
		ProbabilityBlue: 0.25,
		Confidence:      decimal.NewFromFloat(75),
		Message:         "Fighter X will likely win (75.0% confidence)",
	}
}

// TestCacheKeyString tests cache key string representation
func TestCacheKeyString(t *testing.T) {
	key := CacheKey{Scope: "v1", Red: "fighter x", Blue: "fighter y"}

	keyStr := key.String()
	assert.Equal(t, "v1|fighter x|fighter y", keyStr)

	swapped := CacheKey{Scope: "v1", Red: "fighter y", Blue: "fighter x"}
	assert.NotEqual(t, keyStr, swapped.String())
}

// TestPredictionCacheGet tests cache Get operation
func TestPredictionCacheGet(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)

	result := cache.Get(context.Background(), CacheKey{Scope: "v1", Red: "a", Blue: "b"})
	assert.Nil(t, result)
}

// TestPredictionCacheSet tests cache Set operation
func TestPredictionCacheSet(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)

	ctx := context.Background()
	key := CacheKey{Scope: "v1", Red: "fighter x", Blue: "fighter y"}
	outcome := sampleOutcome()

	cache.Set(ctx, key, outcome)

	retrieved := cache.Get(ctx, key)
	require.NotNil(t, retrieved)
	assert.Equal(t, outcome.Message, retrieved.Message)
	assert.Equal(t, outcome.ProbabilityRed, retrieved.ProbabilityRed)

	// callers get their own copy
	retrieved.Message = "changed"
	again := cache.Get(ctx, key)
	require.NotNil(t, again)
	assert.Equal(t, outcome.Message, again.Message)
}

// TestPredictionCacheExpiration tests cache TTL expiration
func TestPredictionCacheExpiration(t *testing.T) {
	cache := NewPredictionCache(100*time.Millisecond, 100)

	ctx := context.Background()
	key := CacheKey{Scope: "v1", Red: "a", Blue: "b"}
	cache.Set(ctx, key, sampleOutcome())

	require.NotNil(t, cache.Get(ctx, key))

	time.Sleep(150 * time.Millisecond)

	assert.Nil(t, cache.Get(ctx, key))
}

// TestPredictionCacheInvalidate tests invalidation by scope
func TestPredictionCacheInvalidate(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)

	ctx := context.Background()
	key1 := CacheKey{Scope: "v1", Red: "a", Blue: "b"}
	key2 := CacheKey{Scope: "v1", Red: "c", Blue: "d"}
	key3 := CacheKey{Scope: "v2", Red: "a", Blue: "b"}

	cache.Set(ctx, key1, sampleOutcome())
	cache.Set(ctx, key2, sampleOutcome())
	cache.Set(ctx, key3, sampleOutcome())

	cache.Invalidate(ctx, "v1")

	assert.Nil(t, cache.Get(ctx, key1))
	assert.Nil(t, cache.Get(ctx, key2))
	assert.NotNil(t, cache.Get(ctx, key3))
}

// TestPredictionCacheStats tests cache statistics tracking
func TestPredictionCacheStats(t *testing.T) {
	cache := NewPredictionCache(time.Hour, 100)

	ctx := context.Background()
	key := CacheKey{Scope: "v1", Red: "a", Blue: "b"}

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(0), misses)
	assert.Equal(t, 0.0, ratio)

	_ = cache.Get(ctx, key)
	hits, misses, ratio = cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0.0, ratio)

	cache.Set(ctx, key, sampleOutcome())
	_ = cache.Get(ctx, key)
	hits, misses, ratio = cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0.5, ratio)
}

// TestPredictionCacheMaxSize tests cache size limit enforcement
func TestPredictionCacheMaxSize(t *testing.T) {
	maxSize := 5
	cache := NewPredictionCache(time.Hour, maxSize)

	ctx := context.Background()
	for i := 0; i < maxSize+5; i++ {
		cache.Set(ctx, CacheKey{Scope: "v1", Red: fmt.Sprintf("red %d", i), Blue: "b"}, sampleOutcome())
	}

	assert.Equal(t, maxSize, cache.ItemCount())
}
