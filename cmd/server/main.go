// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/georec/docs" // Import generated swagger docs
	"github.com/tomtom215/georec/internal/api"
	"github.com/tomtom215/georec/internal/cache"
	"github.com/tomtom215/georec/internal/config"
	"github.com/tomtom215/georec/internal/logging"
	"github.com/tomtom215/georec/internal/metrics"
	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend"
	"github.com/tomtom215/georec/internal/region"
	"github.com/tomtom215/georec/internal/supervisor"
	"github.com/tomtom215/georec/internal/supervisor/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = api.DefaultVersion

const uptimeInterval = 15 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	startTime := time.Now()

	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "georec",
		Region:    cfg.Region.Name,
		Output:    os.Stderr,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("region", cfg.Region.Name).
		Strs("allowed_regions", cfg.Region.Allowed).
		Str("storage_path", cfg.Storage.Path).
		Bool("storage_in_memory", cfg.Storage.InMemory).
		Msg("Starting Georec with supervisor tree")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS is configured with wildcard origin; restrict CORS_ORIGINS in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	// Object store holding processed data and model artifacts
	db, err := objectstore.OpenBadger(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open object store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing object store")
		}
	}()
	store := objectstore.NewBadgerStore(db)
	logging.Info().Msg("Object store opened")

	regionClient, err := region.NewClient(buildRegionConfig(cfg), logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create region client")
	}
	logging.Info().Strs("peers", regionClient.FailoverRegions()).Msg("Region client initialized")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), store, regionClient, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache, err = cache.New(ctx, buildCacheConfig(cfg), logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create response cache")
		}
		defer func() {
			if err := responseCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing response cache")
			}
		}()
	} else {
		logging.Info().Msg("Response cache disabled (CACHE_ENABLED=false)")
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Engine:             engine,
		Regions:            regionClient,
		Cache:              responseCache,
		CacheTTL:           cfg.Cache.TTL,
		Objects:            store,
		RefreshMinInterval: cfg.Security.RefreshMinInterval,
		RequestTimeout:     cfg.Server.Timeout,
		RefreshTimeout:     cfg.Model.TrainTimeout,
		Version:            version,
		Logger:             logger,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	engine.OnPublish(handler.OnModelPublished)

	router := api.NewRouter(handler, buildMiddlewareConfig(cfg), logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Create supervisor tree, bridging zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer: redis expires keys natively, the memory cache needs a janitor
	if responseCache != nil && cache.Backend(cfg.Cache.Backend) != cache.BackendRedis {
		tree.AddDataService(services.NewCacheJanitorService(responseCache, cfg.Cache.CleanupInterval, logger))
		logging.Info().Dur("interval", cfg.Cache.CleanupInterval).Msg("Cache janitor added to supervisor tree")
	}

	// Model layer
	tree.AddModelService(services.NewModelService(engine, buildModelServiceConfig(cfg), logger))
	logging.Info().
		Dur("update_interval", cfg.Model.UpdateInterval).
		Msg("Model service added to supervisor tree")

	// API layer
	httpService := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger)
	httpService.OnShutdown(handler.Close)
	tree.AddAPIService(httpService)
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	metrics.SetAppInfo(version, cfg.Region.Name)
	go trackUptime(ctx, startTime)

	// === START SUPERVISOR TREE ===

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// trackUptime refreshes the uptime gauge until ctx is canceled.
func trackUptime(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(uptimeInterval)
	defer ticker.Stop()

	metrics.UpdateUptime(start)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateUptime(start)
		}
	}
}
