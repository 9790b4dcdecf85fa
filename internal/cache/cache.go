// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/georec/internal/metrics"
)

// Defaults used when a Config leaves a field unset.
const (
	DefaultTTL      = time.Hour
	DefaultCapacity = 10000
)

// Backend selects the cache implementation.
type Backend string

const (
	// BackendMemory keeps entries in a per-process LRU.
	BackendMemory Backend = "memory"

	// BackendRedis shares entries between replicas through Redis.
	BackendRedis Backend = "redis"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache stores serialized API responses.
//
// Implementations are safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures, which callers
// treat as misses.
type Cache interface {
	// Get returns the payload stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Clear removes every key matching a glob pattern and returns the count.
	// An empty pattern clears the whole cache.
	Clear(ctx context.Context, pattern string) (int, error)

	// CleanupExpired drops expired entries. Backends with native expiry
	// return zero.
	CleanupExpired(ctx context.Context) int

	// Stats returns a point-in-time snapshot of cache counters.
	Stats(ctx context.Context) Stats

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Stats tracks cache performance metrics.
type Stats struct {
	Backend   Backend `json:"backend"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

// Config holds configuration for creating a cache.
type Config struct {
	Backend  Backend
	TTL      time.Duration
	Capacity int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// New creates the cache selected by cfg.Backend. An empty backend means memory.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Backend {
	case BackendMemory, "":
		if cfg.Capacity <= 0 {
			cfg.Capacity = DefaultCapacity
		}
		logger.Info().
			Int("capacity", cfg.Capacity).
			Dur("ttl", cfg.TTL).
			Msg("using in-memory response cache")
		return NewMemoryCache(cfg.Capacity, cfg.TTL), nil
	case BackendRedis:
		rc, err := NewRedisCache(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// RecommendationKey is the cache key for a user's recommendation response.
func RecommendationKey(userID string, count int, region string) string {
	return fmt.Sprintf("recommendations:%s:%d:%s", userID, count, region)
}

// GenerateKey creates a compact cache key from a method name and parameters.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}

// MemoryCache adapts LRUCache to the Cache interface and reports metrics.
type MemoryCache struct {
	lru *LRUCache
}

// NewMemoryCache creates an in-process cache.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: NewLRUCache(capacity, ttl)}
}

// Get implements Cache.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	value, ok := m.lru.Get(key)
	if ok {
		metrics.CacheHits.WithLabelValues(string(BackendMemory)).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(string(BackendMemory)).Inc()
	}
	return value, ok, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lru.Add(key, value, ttl)
	metrics.CacheSize.WithLabelValues(string(BackendMemory)).Set(float64(m.lru.Len()))
	return nil
}

// Delete implements Cache.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lru.Remove(key)
	return nil
}

// Clear implements Cache.
func (m *MemoryCache) Clear(ctx context.Context, pattern string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	removed := m.lru.RemoveMatching(pattern)
	metrics.CacheSize.WithLabelValues(string(BackendMemory)).Set(float64(m.lru.Len()))
	return removed, nil
}

// CleanupExpired implements Cache.
func (m *MemoryCache) CleanupExpired(_ context.Context) int {
	removed := m.lru.CleanupExpired()
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(string(BackendMemory)).Add(float64(removed))
	}
	metrics.CacheSize.WithLabelValues(string(BackendMemory)).Set(float64(m.lru.Len()))
	return removed
}

// Stats implements Cache.
func (m *MemoryCache) Stats(_ context.Context) Stats {
	hits, misses, evictions, size := m.lru.Counters()
	return Stats{
		Backend:   BackendMemory,
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		Size:      size,
		HitRate:   hitRate(hits, misses),
	}
}

// Ping implements Cache.
func (m *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements Cache.
func (m *MemoryCache) Close() error {
	m.lru.Clear()
	return nil
}

// hitRate returns the hit rate as a percentage.
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
