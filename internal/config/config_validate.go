// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateRegion,
		c.validateModel,
		c.validateRecommend,
		c.validateStorage,
		c.validateCache,
		c.validateSecurity,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateRegion checks the local region is allowed and every allowed region
// has a well-formed endpoint.
func (c *Config) validateRegion() error {
	if c.Region.Name == "" {
		return fmt.Errorf("REGION is required")
	}
	if len(c.Region.Allowed) == 0 {
		return fmt.Errorf("ALLOWED_REGIONS must list at least one region")
	}
	if !c.isAllowedRegion(c.Region.Name) {
		return fmt.Errorf("REGION %q is not in ALLOWED_REGIONS %v", c.Region.Name, c.Region.Allowed)
	}
	for _, name := range c.Region.Allowed {
		endpoint, ok := c.Region.Endpoints[name]
		if !ok || endpoint == "" {
			return fmt.Errorf("REGION_ENDPOINTS is missing an endpoint for %q", name)
		}
		if err := validateEndpoint(name, endpoint); err != nil {
			return err
		}
	}
	return c.validateRegionTimeouts()
}

func (c *Config) validateRegionTimeouts() error {
	timeouts := map[string]time.Duration{
		"PEER_TIMEOUT":          c.Region.PeerTimeout,
		"PROBE_TIMEOUT":         c.Region.ProbeTimeout,
		"FAILOVER_TIMEOUT":      c.Region.FailoverTimeout,
		"REGION_CLIENT_TIMEOUT": c.Region.ClientTimeout,
		"BREAKER_INTERVAL":      c.Region.Breaker.Interval,
		"BREAKER_TIMEOUT":       c.Region.Breaker.Timeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	if c.Region.Breaker.FailureRatio <= 0 || c.Region.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Region.Breaker.FailureRatio)
	}
	return nil
}

func (c *Config) isAllowedRegion(name string) bool {
	for _, r := range c.Region.Allowed {
		if r == name {
			return true
		}
	}
	return false
}

// validateModel validates factorization and lifecycle settings
func (c *Config) validateModel() error {
	if c.Model.Components < 1 {
		return fmt.Errorf("COLLABORATIVE_FILTERING_COMPONENTS must be positive, got %d", c.Model.Components)
	}
	if c.Model.SimilarityThreshold < -1 || c.Model.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be between -1 and 1, got %v", c.Model.SimilarityThreshold)
	}
	if c.Model.NeighborhoodSize < 1 {
		return fmt.Errorf("NEIGHBORHOOD_SIZE must be positive, got %d", c.Model.NeighborhoodSize)
	}
	if c.Model.UpdateInterval <= 0 || c.Model.RetryInterval <= 0 || c.Model.TrainTimeout <= 0 {
		return fmt.Errorf("MODEL_UPDATE_INTERVAL, MODEL_RETRY_INTERVAL and MODEL_TRAIN_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend validates request limits
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultCount < 1 || r.MaxCount < r.DefaultCount {
		return fmt.Errorf("DEFAULT_RECOMMENDATION_COUNT must be positive and not exceed MAX_RECOMMENDATION_COUNT (%d > %d)", r.DefaultCount, r.MaxCount)
	}
	if r.MaxSimilar < 1 || r.MaxTrending < 1 {
		return fmt.Errorf("MAX_SIMILAR_COUNT and MAX_TRENDING_COUNT must be positive")
	}
	return nil
}

// validateStorage validates the object store location
func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	return nil
}

// validCacheBackends defines the allowed cache backends
var validCacheBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// validateCache validates response cache settings (only if enabled)
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.Backend == "memory" && c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if c.Security.RefreshMinInterval < 0 {
		return fmt.Errorf("REFRESH_MIN_INTERVAL must not be negative")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
