package ml

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/fight-predictor/internal/metrics"
	"github.com/yourusername/fight-predictor/internal/models"
)

// CacheKey identifies a prediction by the normalized fighter pair and the
// scope (model version plus dataset fingerprint) that produced it
type CacheKey struct {
	Scope string
	Red   string
	Blue  string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return k.Scope + "|" + k.Red + "|" + k.Blue
}

// PredictionCache provides in-memory caching for fight predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached outcome, or nil on a miss
func (pc *PredictionCache) Get(ctx context.Context, key CacheKey) *models.Outcome {
	if result, found := pc.cache.Get(key.String()); found {
		if outcome, ok := result.(models.Outcome); ok {
			pc.hitCount.Add(1)
			pc.updateMetrics()
			return &outcome
		}
	}

	pc.missCount.Add(1)
	pc.updateMetrics()
	return nil
}

// Set stores an outcome in cache. When the cache is full and nothing has
// expired the outcome is not stored.
func (pc *PredictionCache) Set(ctx context.Context, key CacheKey, outcome *models.Outcome) {
	if outcome == nil {
		return
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.maxSize > 0 && pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}

	pc.cache.Set(key.String(), *outcome, pc.ttl)
}

// Invalidate removes all cache entries produced under a scope
func (pc *PredictionCache) Invalidate(ctx context.Context, scope string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	prefix := scope + "|"
	for k := range pc.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			pc.cache.Delete(k)
		}
	}
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount.Load()
	misses = pc.missCount.Load()
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.Stats()
	metrics.UpdateCacheHitRatio(ratio)
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
