// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/georec/config.yaml",
	"/etc/georec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Region: RegionConfig{
			Name:    "us-east-1",
			Allowed: []string{"us-east-1", "us-west-1", "eu-west-1", "ap-south-1"},
			Endpoints: map[string]string{
				"us-east-1":  "http://localhost:8000",
				"us-west-1":  "http://localhost:8001",
				"eu-west-1":  "http://localhost:8002",
				"ap-south-1": "http://localhost:8003",
			},
			FailoverEnabled: true,
			PeerTimeout:     5 * time.Second,
			ProbeTimeout:    5 * time.Second,
			FailoverTimeout: 10 * time.Second,
			ClientTimeout:   10 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Model: ModelConfig{
			Components:          50,
			Seed:                42,
			SimilarityThreshold: 0.1,
			NeighborhoodSize:    20,
			UpdateInterval:      24 * time.Hour,
			RetryInterval:       time.Minute,
			TrainTimeout:        30 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultCount: 10,
			MaxCount:     50,
			MaxSimilar:   50,
			MaxTrending:  100,
		},
		Storage: StorageConfig{
			Path:     "/data/georec",
			InMemory: false,
		},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			TTL:             time.Hour,
			Capacity:        10000,
			CleanupInterval: 5 * time.Minute,
			RedisAddr:       "localhost:6379",
			RedisDB:         0,
		},
		Security: SecurityConfig{
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:8000",
				"http://localhost:8001",
				"http://localhost:8002",
				"http://localhost:8003",
			},
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			RefreshMinInterval: time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMapFields(k); err != nil {
		return nil, fmt.Errorf("failed to process map fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"region.allowed",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		if parts := splitList(strVal); len(parts) > 0 {
			if err := k.Set(path, parts); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// mapConfigPaths defines which config paths are given as region=url pairs in env vars
var mapConfigPaths = []string{
	"region.endpoints",
}

// processMapFields converts "a=x,b=y" string values to maps for known map fields.
func processMapFields(k *koanf.Koanf) error {
	for _, path := range mapConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parsed, err := ParseEndpoints(strVal)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		m := make(map[string]interface{}, len(parsed))
		for name, url := range parsed {
			m[name] = url
		}
		// Delete first so the parsed map replaces the defaults rather than merging.
		k.Delete(path)
		if err := k.Set(path, m); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// ParseEndpoints parses comma-separated region=url pairs.
func ParseEndpoints(s string) (map[string]string, error) {
	endpoints := make(map[string]string)
	for _, pair := range splitList(s) {
		name, url, found := strings.Cut(pair, "=")
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if !found || name == "" || url == "" {
			return nil, fmt.Errorf("invalid endpoint %q, expected region=url", pair)
		}
		endpoints[name] = url
	}
	return endpoints, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so unrelated environment does not leak
// into the configuration.
//
// Examples:
//   - REGION -> region.name
//   - REGION_ENDPOINTS -> region.endpoints
//   - MODEL_UPDATE_INTERVAL -> model.update_interval
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Region mappings
	"region":                "region.name",
	"allowed_regions":       "region.allowed",
	"region_endpoints":      "region.endpoints",
	"failover_enabled":      "region.failover_enabled",
	"peer_timeout":          "region.peer_timeout",
	"probe_timeout":         "region.probe_timeout",
	"failover_timeout":      "region.failover_timeout",
	"region_client_timeout": "region.client_timeout",
	"breaker_max_requests":  "region.breaker.max_requests",
	"breaker_interval":      "region.breaker.interval",
	"breaker_timeout":       "region.breaker.timeout",
	"breaker_min_requests":  "region.breaker.min_requests",
	"breaker_failure_ratio": "region.breaker.failure_ratio",

	// Model mappings
	"collaborative_filtering_components": "model.components",
	"model_seed":                         "model.seed",
	"similarity_threshold":               "model.similarity_threshold",
	"neighborhood_size":                  "model.neighborhood_size",
	"model_update_interval":              "model.update_interval",
	"model_retry_interval":               "model.retry_interval",
	"model_train_timeout":                "model.train_timeout",

	// Recommendation limit mappings
	"default_recommendation_count": "recommend.default_count",
	"max_recommendation_count":     "recommend.max_count",
	"max_similar_count":            "recommend.max_similar",
	"max_trending_count":           "recommend.max_trending",

	// Storage mappings
	"storage_path":      "storage.path",
	"storage_in_memory": "storage.in_memory",

	// Cache mappings
	"cache_enabled":          "cache.enabled",
	"cache_backend":          "cache.backend",
	"cache_ttl":              "cache.ttl",
	"cache_capacity":         "cache.capacity",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"redis_addr":             "cache.redis_addr",
	"redis_password":         "cache.redis_password",
	"redis_db":               "cache.redis_db",

	// Security mappings
	"cors_origins":         "security.cors_origins",
	"allowed_origins":      "security.cors_origins",
	"rate_limit_requests":  "security.rate_limit_reqs",
	"rate_limit_window":    "security.rate_limit_window",
	"disable_rate_limit":   "security.rate_limit_disabled",
	"refresh_min_interval": "security.refresh_min_interval",
}
