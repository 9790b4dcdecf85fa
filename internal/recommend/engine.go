// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/metrics"
	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend/storage"
)

// PeerClient fetches recommendations computed by a remote region.
type PeerClient interface {
	Recommend(ctx context.Context, region, userID string, count int) ([]RecommendationItem, error)
}

// Engine serves recommendations from the active snapshot.
// It is safe for concurrent use. Inference reads the snapshot pointer once per
// call and never blocks on loading or refresh.
type Engine struct {
	config *Config
	logger zerolog.Logger
	store  *ModelStore
	peers  PeerClient

	snapshot  atomic.Pointer[Snapshot]
	version   atomic.Int64
	refreshMu sync.Mutex
	lastError atomic.Value // string

	startupTime time.Time

	publishMu sync.RWMutex
	onPublish []func(*Snapshot)

	// Metrics
	requestCount  atomic.Int64
	fallbackCount atomic.Int64
}

// NewEngine creates an engine reading data and artifacts from objects.
// peers may be nil when no remote regions are configured.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, objects objectstore.Store, peers PeerClient, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if objects == nil {
		return nil, fmt.Errorf("object store is required")
	}

	cfg = cfg.Clone()
	logger = logger.With().Str("component", "recommend").Str("region", cfg.Region).Logger()

	loader := NewLoader(objects, cfg.Region, logger)
	trainer := NewTrainer(cfg.Model.Components, cfg.Model.Seed, logger)
	artifacts := storage.NewArtifactStore(objects, objectstore.ModelsBucket(cfg.Region))

	e := &Engine{
		config:      cfg,
		logger:      logger,
		store:       NewModelStore(loader, trainer, artifacts, logger),
		peers:       peers,
		startupTime: time.Now().UTC(),
	}
	e.lastError.Store("")
	return e, nil
}

// Region returns the local region name.
func (e *Engine) Region() string {
	return e.config.Region
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Snapshot returns the active snapshot, or nil before the first load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// OnPublish registers fn to run after every successful snapshot swap.
func (e *Engine) OnPublish(fn func(*Snapshot)) {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	e.onPublish = append(e.onPublish, fn)
}

// LoadOrTrain loads persisted artifacts or trains a new model and publishes
// the resulting snapshot.
func (e *Engine) LoadOrTrain(ctx context.Context) error {
	return e.reload(ctx, false)
}

// Refresh re-runs the full load sequence and atomically swaps the active
// snapshot. On failure the previous snapshot stays active.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.reload(ctx, false)
}

// Retrain ignores persisted artifacts, trains on fresh data, persists and
// swaps the active snapshot.
func (e *Engine) Retrain(ctx context.Context) error {
	return e.reload(ctx, true)
}

func (e *Engine) reload(ctx context.Context, forceTrain bool) error {
	if !e.refreshMu.TryLock() {
		return ErrRefreshInProgress
	}
	defer e.refreshMu.Unlock()

	start := time.Now()
	loadCtx, cancel := context.WithTimeout(ctx, e.config.Model.TrainTimeout)
	defer cancel()

	snap, err := e.store.LoadOrTrain(loadCtx, forceTrain)
	if err != nil {
		metrics.RecordModelLoad(time.Since(start), false, loadErrorType(err), err)
		e.lastError.Store(err.Error())
		e.logger.Error().
			Err(err).
			Bool("ready", e.Ready()).
			Msg("model load failed, keeping previous snapshot")
		return err
	}

	snap.Version = e.version.Add(1)
	snap.PublishedAt = time.Now().UTC()
	e.snapshot.Store(snap)
	e.lastError.Store("")

	metrics.RecordModelLoad(time.Since(start), snap.Loaded, "", nil)
	metrics.UpdateModelGauges(snap.Version, snap.Matrix.UserCount(), snap.Matrix.ProductCount(),
		snap.Model.Factors.TotalExplainedVariance(), snap.PublishedAt)

	e.logger.Info().
		Int64("version", snap.Version).
		Bool("loaded_from_store", snap.Loaded).
		Int("users", snap.Matrix.UserCount()).
		Int("products", snap.Matrix.ProductCount()).
		Dur("duration", time.Since(start)).
		Msg("published model snapshot")

	e.publishMu.RLock()
	hooks := slices.Clone(e.onPublish)
	e.publishMu.RUnlock()
	for _, fn := range hooks {
		fn(snap)
	}
	return nil
}

// loadErrorType labels a failed load for the model_load_errors_total metric.
func loadErrorType(err error) string {
	switch {
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrTrainingFailed):
		return "training"
	case errors.Is(err, ErrPersistFailed):
		return "persist"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "other"
	}
}
