// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package region talks to peer Georec regions over HTTP.

Client implements recommend.PeerClient: it requests recommendations from a
peer's /api/v1/recommendations/user/{user_id} endpoint and decodes the
recommendations array from the response. Every peer has its own circuit
breaker (sony/gobreaker) so a dead region fails fast instead of holding each
aggregation request for the full peer timeout.

The package also probes peer health and latency through GET /api/v1/health/
and exposes the failover view derived from the allowed region list.

# Circuit Breaker

Per-region breaker settings:
  - Opens when the failure ratio reaches FailureRatio over at least
    MinRequests requests within Interval
  - Stays open for Timeout, then allows MaxRequests trial requests
  - State changes are logged and exported as circuit_breaker_* metrics
    labeled "region-<name>"

Health probes bypass the breaker so an open circuit never hides a recovered
region from the health report.
*/
package region
