// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package api provides the HTTP REST API of a Georec region.

Routes are mounted under /api/v1:

1. Health (/api/v1/health/):
  - GET  /           basic health, probed by peer regions
  - GET  /live       liveness
  - GET  /ready      readiness; 503 until the first model is published
  - GET  /detailed   model, object store and cache status

2. Recommendations (/api/v1/recommendations/):
  - POST /user/{user_id}                   personalized recommendations
  - POST /similar-products/{product_id}    item-factor neighbours
  - POST /trending                         popularity ranking
  - POST /cross-region                     fan-out and merge across regions
  - GET  /stats                            model and cache statistics
  - POST /refresh-models                   asynchronous reload or retrain
  - POST /clear-cache                      remove cached responses by glob

3. Regions (/api/v1/regions/):
  - GET  /current, /all, /failover
  - GET  /health, /latency                 concurrent peer probes
  - POST /failover/{target_region}         failover connectivity test

Prometheus metrics are served at /metrics and the OpenAPI UI at /swagger/.

Recommendation endpoints return the bare response objects so that peer
regions can decode them directly. Errors use the models.APIResponse envelope
with a machine-readable code.

Middleware order: request ID, real IP, request logging, Prometheus metrics,
panic recovery, CORS, compression, then per-group rate limits from
go-chi/httprate.
*/
package api
