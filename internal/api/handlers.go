// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/georec/internal/cache"
	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend"
	"github.com/tomtom215/georec/internal/region"
)

// Engine is the recommendation engine as seen by the HTTP layer.
// *recommend.Engine implements it.
type Engine interface {
	Region() string
	Config() *recommend.Config
	Ready() bool
	Recommend(ctx context.Context, userID string, opts recommend.RecommendOptions) ([]recommend.RecommendationItem, error)
	Similar(ctx context.Context, productID string, count int) ([]recommend.SimilarProduct, error)
	Trending(ctx context.Context, count int, category string, windowHours int) ([]recommend.TrendingProduct, error)
	Aggregate(ctx context.Context, userID string, regions []string, count int, method recommend.AggregationMethod) (*recommend.AggregateResult, error)
	Stats() recommend.Stats
	Refresh(ctx context.Context) error
	Retrain(ctx context.Context) error
	RequestCount() int64
	FallbackCount() int64
}

// RegionDirectory answers questions about the configured regions.
// *region.Client implements it.
type RegionDirectory interface {
	Local() string
	Allowed() []string
	FailoverEnabled() bool
	Endpoint(name string) (string, bool)
	Endpoints() map[string]string
	FailoverRegions() []string
	BreakerState(name string) string
	Health(ctx context.Context) region.HealthReport
	Latency(ctx context.Context) region.LatencyReport
	TestFailover(ctx context.Context, target string) (*region.FailoverResult, error)
}

// HandlerConfig holds the dependencies of Handler.
type HandlerConfig struct {
	Engine  Engine
	Regions RegionDirectory

	// Cache stores recommendation responses. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Objects is probed by the detailed health check. Optional.
	Objects objectstore.Store

	// RefreshMinInterval is the minimum spacing between accepted
	// refresh-models calls. Zero disables throttling.
	RefreshMinInterval time.Duration

	// RequestTimeout bounds engine calls made on behalf of one request.
	RequestTimeout time.Duration

	// RefreshTimeout bounds one background refresh.
	RefreshTimeout time.Duration

	Version string
	Logger  zerolog.Logger
}

// Handler serves the Georec HTTP API.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, lifecycle
//   - handlers_helpers.go: response and request helpers
//   - handlers_health.go: health endpoints
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_admin.go: refresh-models and clear-cache
//   - handlers_regions.go: region endpoints
type Handler struct {
	engine  Engine
	regions RegionDirectory
	cache   cache.Cache
	objects objectstore.Store

	cacheTTL       time.Duration
	requestTimeout time.Duration
	refreshTimeout time.Duration
	version        string
	startTime      time.Time
	logger         zerolog.Logger

	flight         singleflight.Group
	refreshLimiter *rate.Limiter
	refreshing     atomic.Bool

	// Background refreshes run under baseCtx and are awaited by Close.
	baseCtx    context.Context
	cancelBase context.CancelFunc
	wg         sync.WaitGroup
}

// Defaults applied by NewHandler.
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultRefreshTimeout = 30 * time.Minute
	DefaultVersion        = "1.0.0"
)

// NewHandler creates a Handler. Engine and Regions are required.
//
//nolint:gocritic // hugeParam: config is read once at construction
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if cfg.Regions == nil {
		return nil, errors.New("region directory is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	limit := rate.Inf
	if cfg.RefreshMinInterval > 0 {
		limit = rate.Every(cfg.RefreshMinInterval)
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	return &Handler{
		engine:         cfg.Engine,
		regions:        cfg.Regions,
		cache:          cfg.Cache,
		objects:        cfg.Objects,
		cacheTTL:       cfg.CacheTTL,
		requestTimeout: cfg.RequestTimeout,
		refreshTimeout: cfg.RefreshTimeout,
		version:        cfg.Version,
		startTime:      time.Now(),
		logger:         cfg.Logger.With().Str("component", "api").Logger(),
		refreshLimiter: rate.NewLimiter(limit, 1),
		baseCtx:        baseCtx,
		cancelBase:     cancel,
	}, nil
}

// Close cancels running background refreshes and waits for them to exit.
func (h *Handler) Close() {
	h.cancelBase()
	h.wg.Wait()
}
