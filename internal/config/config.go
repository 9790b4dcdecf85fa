// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Region    RegionConfig    `koanf:"region"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Storage   StorageConfig   `koanf:"storage"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RegionConfig describes this deployment's place in the multi-region topology.
type RegionConfig struct {
	// Name is the local region.
	Name string `koanf:"name"`

	// Allowed lists every region of the deployment, local included.
	Allowed []string `koanf:"allowed"`

	// Endpoints maps region names to base URLs. From the environment it is
	// given as comma-separated region=url pairs.
	Endpoints map[string]string `koanf:"endpoints"`

	FailoverEnabled bool          `koanf:"failover_enabled"`
	PeerTimeout     time.Duration `koanf:"peer_timeout"`
	ProbeTimeout    time.Duration `koanf:"probe_timeout"`
	FailoverTimeout time.Duration `koanf:"failover_timeout"`
	ClientTimeout   time.Duration `koanf:"client_timeout"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds per-peer circuit breaker settings.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// ModelConfig holds factorization and lifecycle settings.
type ModelConfig struct {
	Components          int           `koanf:"components"`
	Seed                int64         `koanf:"seed"`
	SimilarityThreshold float64       `koanf:"similarity_threshold"`
	NeighborhoodSize    int           `koanf:"neighborhood_size"`
	UpdateInterval      time.Duration `koanf:"update_interval"`
	RetryInterval       time.Duration `koanf:"retry_interval"`
	TrainTimeout        time.Duration `koanf:"train_timeout"`
}

// RecommendConfig holds request limits.
type RecommendConfig struct {
	DefaultCount int `koanf:"default_count"`
	MaxCount     int `koanf:"max_count"`
	MaxSimilar   int `koanf:"max_similar"`
	MaxTrending  int `koanf:"max_trending"`
}

// StorageConfig holds the object store location.
type StorageConfig struct {
	// Path is the BadgerDB directory.
	Path string `koanf:"path"`

	// InMemory runs BadgerDB without persistence (development and tests).
	InMemory bool `koanf:"in_memory"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Backend  string        `koanf:"backend"` // memory or redis
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`

	// CleanupInterval is how often the janitor drops expired memory entries.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// RefreshMinInterval throttles the model refresh endpoint.
	RefreshMinInterval time.Duration `koanf:"refresh_min_interval"`
}

// PeerRegions returns the allowed regions other than the local one.
func (c *Config) PeerRegions() []string {
	peers := make([]string, 0, len(c.Region.Allowed))
	for _, r := range c.Region.Allowed {
		if r != c.Region.Name {
			peers = append(peers, r)
		}
	}
	return peers
}
