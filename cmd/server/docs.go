// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package main provides the Georec HTTP server
//
// @title Georec API
// @version 1.0
// @description Region-local product recommendations with cross-region aggregation and failover.
// @description
// @description ## Response Shapes
// @description
// @description Recommendation, similar and trending endpoints return their payload directly.
// @description Health, region and admin endpoints wrap the payload in a standard envelope.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-18T12:34:56Z"
// @description   }
// @description }
// @description ```
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Peer-facing region endpoints and admin endpoints have their own limits.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/georec/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Health checks and readiness
//
// @tag.name Recommendations
// @tag.description Personalized, similar-product, trending and cross-region recommendations
//
// @tag.name Regions
// @tag.description Region topology, peer health, latency and failover tests
//
// @tag.name Admin
// @tag.description Model refresh and cache maintenance
package main
