// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package testinfra provides container helpers for integration tests.
//
// Helpers are compiled only with the integration build tag and use
// testcontainers-go to run real backing services:
//
//	func TestRedisCache(t *testing.T) {
//	    redis := testinfra.StartRedis(t)
//	    c, err := cache.NewRedisCache(ctx, cache.Config{RedisAddr: redis.Addr}, logger)
//	    // ...
//	}
//
// Run with:
//
//	go test -tags integration ./internal/cache/...
//
// Tests are skipped when Docker is unavailable. The first run may need to pull
// images.
package testinfra
