// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/georec/internal/metrics"
)

const (
	defaultKeyPrefix = "georec:"
	scanBatchSize    = 500
)

// RedisCache is a Cache shared by all replicas of a region. Expiry is handled
// by Redis itself.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache connects to Redis and verifies the connection with PING.
//
//nolint:gocritic // hugeParam: cfg and logger passed by value
func NewRedisCache(ctx context.Context, cfg Config, logger zerolog.Logger) (*RedisCache, error) {
	if cfg.RedisAddr == "" {
		return nil, errors.New("redis address is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log := logger.With().Str("component", "redis-cache").Logger()
	log.Info().
		Str("addr", cfg.RedisAddr).
		Int("db", cfg.RedisDB).
		Dur("ttl", cfg.TTL).
		Msg("connected to redis response cache")

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    cfg.TTL,
		logger: log,
	}, nil
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.misses.Add(1)
		metrics.CacheMisses.WithLabelValues(string(BackendRedis)).Inc()
		return nil, false, nil
	}
	if err != nil {
		r.misses.Add(1)
		metrics.CacheMisses.WithLabelValues(string(BackendRedis)).Inc()
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	r.hits.Add(1)
	metrics.CacheHits.WithLabelValues(string(BackendRedis)).Inc()
	return value, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements Cache.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear implements Cache. Keys are found with SCAN so the server is never
// blocked by KEYS.
func (r *RedisCache) Clear(ctx context.Context, pattern string) (int, error) {
	if pattern == "" {
		pattern = "*"
	}

	removed := 0
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+pattern, scanBatchSize).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	r.logger.Debug().Str("pattern", pattern).Int("removed", removed).Msg("cleared cache entries")
	return removed, nil
}

// CleanupExpired implements Cache. Redis expires keys itself.
func (r *RedisCache) CleanupExpired(_ context.Context) int {
	return 0
}

// Stats implements Cache. Size counts keys under this cache's prefix.
func (r *RedisCache) Stats(ctx context.Context) Stats {
	hits, misses := r.hits.Load(), r.misses.Load()
	stats := Stats{
		Backend: BackendRedis,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}

	size, err := r.countKeys(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to count cache keys")
		return stats
	}
	stats.Size = size
	metrics.CacheSize.WithLabelValues(string(BackendRedis)).Set(float64(size))
	return stats
}

// Ping implements Cache.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Cache.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) countKeys(ctx context.Context) (int, error) {
	count := 0
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
