// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation operations",
		},
		[]string{"operation", "result"}, // operation: "user", "similar", "trending", "popular", "cross_region"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	RecommendItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_items_returned",
			Help:    "Number of items returned per recommendation operation",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_popularity_fallbacks_total",
			Help: "Total number of personalized requests served from popularity",
		},
	)

	// Model Metrics
	ModelLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_load_duration_seconds",
			Help:    "Duration of model load-or-train runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 1800},
		},
		[]string{"source"}, // "store", "trained"
	)

	ModelLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_load_errors_total",
			Help: "Total number of failed model loads",
		},
		[]string{"error_type"}, // "data_unavailable", "training_failed", "in_progress", "timeout", "other"
	)

	ModelReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_ready",
			Help: "Whether a model snapshot is being served (1) or not (0)",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_version",
			Help: "Version of the active model snapshot",
		},
	)

	ModelLastUpdate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_last_update_timestamp",
			Help: "Unix timestamp of the last published model snapshot",
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_users",
			Help: "Number of users in the active interaction matrix",
		},
	)

	ModelProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_products",
			Help: "Number of products in the active interaction matrix",
		},
	)

	ModelExplainedVariance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_explained_variance_ratio",
			Help: "Total explained variance ratio of the active factorization",
		},
	)

	// Region Metrics
	RegionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "region_requests_total",
			Help: "Total number of requests to peer regions",
		},
		[]string{"region", "result"}, // result: "success", "failure", "timeout"
	)

	RegionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "region_request_duration_seconds",
			Help:    "Duration of peer region requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"region"},
	)

	RegionHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "region_healthy",
			Help: "Last observed peer region health (1=healthy, 0=unhealthy)",
		},
		[]string{"region"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "redis"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry or capacity)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and region information",
		},
		[]string{"version", "go_version", "region"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation operation.
func RecordRecommendation(operation string, duration time.Duration, items int, err error) {
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		RecommendRequests.WithLabelValues(operation, "error").Inc()
		return
	}
	RecommendRequests.WithLabelValues(operation, "success").Inc()
	RecommendItemsReturned.WithLabelValues(operation).Observe(float64(items))
}

// RecordModelLoad records a load-or-train run. fromStore reports whether the
// persisted artifacts were adopted. errorType is ignored when err is nil.
func RecordModelLoad(duration time.Duration, fromStore bool, errorType string, err error) {
	if err != nil {
		if errorType == "" {
			errorType = "other"
		}
		ModelLoadErrors.WithLabelValues(errorType).Inc()
		return
	}
	source := "trained"
	if fromStore {
		source = "store"
	}
	ModelLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// UpdateModelGauges publishes the shape of the active model.
func UpdateModelGauges(version int64, users, products int, explainedVariance float64, updated time.Time) {
	ModelReady.Set(1)
	ModelVersion.Set(float64(version))
	ModelUsers.Set(float64(users))
	ModelProducts.Set(float64(products))
	ModelExplainedVariance.Set(explainedVariance)
	ModelLastUpdate.Set(float64(updated.Unix()))
}

// RecordRegionRequest records a call to a peer region.
func RecordRegionRequest(region string, duration time.Duration, err error) {
	RegionRequestDuration.WithLabelValues(region).Observe(duration.Seconds())
	switch {
	case err == nil:
		RegionRequests.WithLabelValues(region, "success").Inc()
	case errors.Is(err, context.DeadlineExceeded):
		RegionRequests.WithLabelValues(region, "timeout").Inc()
	default:
		RegionRequests.WithLabelValues(region, "failure").Inc()
	}
}

// SetRegionHealth records the outcome of a peer health probe.
func SetRegionHealth(region string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	RegionHealthy.WithLabelValues(region).Set(v)
}

// SetAppInfo publishes build and placement labels.
func SetAppInfo(version, region string) {
	AppInfo.WithLabelValues(version, runtime.Version(), region).Set(1)
}

// UpdateUptime sets the uptime gauge relative to start.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
