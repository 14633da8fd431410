package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/models"
)

// ModelLoader produces a fresh Model, typically by calling LoadModel
type ModelLoader func(ctx context.Context) (Model, error)

// Reloader serves predictions from a PredictionService that Reload can
// replace without dropping in-flight requests.
type Reloader struct {
	current atomic.Pointer[PredictionService]
	load    ModelLoader
	cache   *ml.PredictionCache
	opts    []PredictionOption
	log     *logrus.Entry
	mu      sync.Mutex
}

// NewReloader loads the first model. The cache, when non-nil, is shared by
// every service the reloader builds.
func NewReloader(ctx context.Context, load ModelLoader, cache *ml.PredictionCache, log *logrus.Logger, opts ...PredictionOption) (*Reloader, error) {
	if load == nil {
		return nil, errors.New("reloader: model loader is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cache != nil {
		opts = append(opts, WithCache(cache))
	}

	r := &Reloader{
		load:  load,
		cache: cache,
		opts:  opts,
		log:   log.WithField("component", "reloader"),
	}
	svc, err := r.build(ctx)
	if err != nil {
		return nil, err
	}
	r.current.Store(svc)
	return r, nil
}

func (r *Reloader) build(ctx context.Context) (*PredictionService, error) {
	model, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return NewPredictionService(model, r.log.Logger, r.opts...)
}

// Current returns the service answering requests right now
func (r *Reloader) Current() *PredictionService {
	return r.current.Load()
}

// PredictFight delegates to the current service
func (r *Reloader) PredictFight(ctx context.Context, red, blue string) (*models.Outcome, error) {
	return r.current.Load().PredictFight(ctx, red, blue)
}

// Fighters delegates to the current service
func (r *Reloader) Fighters() []string {
	return r.current.Load().Fighters()
}

// Reload rebuilds the model and swaps it in. Cached outcomes of the previous
// scope are dropped when the artifacts or the fighter records changed. On
// error the previous model keeps serving.
func (r *Reloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, err := r.build(ctx)
	if err != nil {
		r.log.WithError(err).Error("Model reload failed; keeping current model")
		return fmt.Errorf("reload model: %w", err)
	}

	previous := r.current.Swap(svc)
	invalidated := r.cache != nil && previous.CacheScope() != svc.CacheScope()
	if invalidated {
		r.cache.Invalidate(ctx, previous.CacheScope())
	}

	r.log.WithFields(logrus.Fields{
		"previous_version": previous.Version(),
		"model_version":    svc.Version(),
		"previous_scope":   previous.CacheScope(),
		"cache_scope":      svc.CacheScope(),
		"invalidated":      invalidated,
	}).Info("Model reloaded")
	return nil
}
