// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommend_requests_total: Operations by outcome (counter)
    Labels: operation, result
  - recommend_duration_seconds: Operation latency (histogram)
  - recommend_items_returned: Result sizes (histogram)
  - recommend_popularity_fallbacks_total: Personalized requests served from popularity

Model Metrics:
  - model_load_duration_seconds: Load-or-train duration (histogram)
    Labels: source (store, trained)
  - model_load_errors_total: Failed loads (counter)
    Labels: error_type
  - model_ready, model_version, model_last_update_timestamp (gauges)
  - model_users, model_products, model_explained_variance_ratio (gauges)

Region Metrics:
  - region_requests_total: Peer region calls (counter)
    Labels: region, result (success, failure, timeout)
  - region_request_duration_seconds: Peer call latency (histogram)
  - region_healthy: Last probe result per region (gauge)

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counters)
  - cache_entries (gauge)
    Labels: cache_type (memory, redis)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

# Usage

	start := time.Now()
	items, err := engine.Recommend(ctx, userID, opts)
	metrics.RecordRecommendation("user", time.Since(start), len(items), err)
*/
package metrics
