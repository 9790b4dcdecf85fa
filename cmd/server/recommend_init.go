// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package main

import (
	"github.com/tomtom215/georec/internal/api"
	"github.com/tomtom215/georec/internal/cache"
	"github.com/tomtom215/georec/internal/config"
	"github.com/tomtom215/georec/internal/recommend"
	"github.com/tomtom215/georec/internal/region"
	"github.com/tomtom215/georec/internal/supervisor/services"
)

// buildEngineConfig converts application config to engine config.
// Limits not exposed through application config keep their engine defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()

	engineCfg.Region = cfg.Region.Name
	engineCfg.Regions = append([]string(nil), cfg.Region.Allowed...)
	engineCfg.PeerTimeout = cfg.Region.PeerTimeout

	engineCfg.Model.Components = cfg.Model.Components
	engineCfg.Model.Seed = cfg.Model.Seed
	engineCfg.Model.TrainTimeout = cfg.Model.TrainTimeout

	engineCfg.Neighborhood.Size = cfg.Model.NeighborhoodSize
	engineCfg.Neighborhood.SimilarityThreshold = cfg.Model.SimilarityThreshold

	engineCfg.Limits.DefaultCount = cfg.Recommend.DefaultCount
	engineCfg.Limits.MaxCount = cfg.Recommend.MaxCount
	engineCfg.Limits.MaxSimilar = cfg.Recommend.MaxSimilar
	engineCfg.Limits.MaxTrending = cfg.Recommend.MaxTrending

	return engineCfg
}

// buildRegionConfig converts application config to region client config.
func buildRegionConfig(cfg *config.Config) region.Config {
	endpoints := make(map[string]string, len(cfg.Region.Endpoints))
	for name, url := range cfg.Region.Endpoints {
		endpoints[name] = url
	}

	return region.Config{
		Local:           cfg.Region.Name,
		Allowed:         append([]string(nil), cfg.Region.Allowed...),
		Endpoints:       endpoints,
		FailoverEnabled: cfg.Region.FailoverEnabled,
		ProbeTimeout:    cfg.Region.ProbeTimeout,
		FailoverTimeout: cfg.Region.FailoverTimeout,
		ClientTimeout:   cfg.Region.ClientTimeout,
		Breaker: region.BreakerConfig{
			MaxRequests:  cfg.Region.Breaker.MaxRequests,
			Interval:     cfg.Region.Breaker.Interval,
			Timeout:      cfg.Region.Breaker.Timeout,
			MinRequests:  cfg.Region.Breaker.MinRequests,
			FailureRatio: cfg.Region.Breaker.FailureRatio,
		},
	}
}

// buildCacheConfig converts application config to cache config. Keys are
// prefixed with the region so regions can share one Redis.
func buildCacheConfig(cfg *config.Config) cache.Config {
	return cache.Config{
		Backend:       cache.Backend(cfg.Cache.Backend),
		TTL:           cfg.Cache.TTL,
		Capacity:      cfg.Cache.Capacity,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		KeyPrefix:     "georec:" + cfg.Region.Name + ":",
	}
}

// buildMiddlewareConfig converts security settings to chi middleware config.
func buildMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = append([]string(nil), cfg.Security.CORSOrigins...)
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}

// buildModelServiceConfig converts model lifecycle settings.
func buildModelServiceConfig(cfg *config.Config) services.ModelServiceConfig {
	return services.ModelServiceConfig{
		RetryInterval:  cfg.Model.RetryInterval,
		UpdateInterval: cfg.Model.UpdateInterval,
	}
}
