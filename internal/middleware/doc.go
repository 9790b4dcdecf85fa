// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package middleware provides chi-compatible HTTP middleware for the Georec API.

Key Components:

  - RequestID: request and correlation IDs for log tracing
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - RequestLogger: one structured zerolog line per request

Middleware Stack:

The API router composes these with chi and go-chi/cors/httprate middleware:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimw.Recoverer)

Metric labels use the chi route pattern, so /recommendations/u1 and
/recommendations/u2 share the /recommendations/{user_id} series.

Thread Safety:

All middleware is stateless apart from the Prometheus collectors and is safe
for concurrent use.
*/
package middleware
