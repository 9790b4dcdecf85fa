// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package main is the entry point for the Georec server.

One process serves one region. It loads that region's interaction matrix
and product catalog from the object store, trains or restores a rank-k
factorization, and answers recommendation queries over HTTP. Peer regions
are reached through their configured endpoints for cross-region
aggregation, health probes and failover tests.

# Application Architecture

	RootSupervisor ("georec")
	├── DataSupervisor ("data-layer")
	│   └── Cache janitor (memory backend only)
	├── ModelSupervisor ("model-layer")
	│   └── Model service (initial load with retry, scheduled refresh)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

The HTTP server starts immediately. Until the first model is published,
recommendation endpoints answer 503 and /api/v1/health/ready reports
not_ready.

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file, environment
 2. Logging: zerolog with JSON/console output modes
 3. Object store: BadgerDB
 4. Region client: per-peer HTTP client with circuit breakers
 5. Recommendation engine
 6. Response cache: in-process LRU or Redis
 7. Supervisor tree and HTTP server

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	REGION=us-east-1
	ALLOWED_REGIONS=us-east-1,us-west-1,eu-west-1,ap-south-1
	REGION_ENDPOINTS=us-east-1=http://localhost:8000,us-west-1=http://localhost:8001

	COLLABORATIVE_FILTERING_COMPONENTS=50
	SIMILARITY_THRESHOLD=0.1
	MODEL_UPDATE_INTERVAL=24h

	STORAGE_PATH=/data/georec
	CACHE_BACKEND=memory         # memory or redis
	REDIS_ADDR=localhost:6379

A YAML file is read from CONFIG_PATH, ./config.yaml or
/etc/georec/config.yaml when present.

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
the configured shutdown timeout, running background refreshes are
canceled, and the object store and cache are closed.
*/
package main
