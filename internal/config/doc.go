// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package config provides centralized configuration management for Georec.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is taken from CONFIG_PATH or
the first of config.yaml, config.yml, /etc/georec/config.yaml that exists.

# Sections

  - server: HTTP listen address and timeouts
  - logging: zerolog level, format and caller info
  - region: local region, allowed regions, peer endpoints, breaker settings
  - model: factorization rank, seed, neighborhood and refresh schedule
  - recommend: request count limits
  - storage: BadgerDB object store location
  - cache: response cache backend (memory or redis) and TTL
  - security: CORS origins and rate limits

# Environment Variables

Only mapped variables are read. The names follow the deployment scripts:

	REGION=eu-west-1
	ALLOWED_REGIONS=us-east-1,us-west-1,eu-west-1,ap-south-1
	REGION_ENDPOINTS=us-east-1=http://10.0.0.1:8000,eu-west-1=http://10.0.0.2:8000
	FAILOVER_ENABLED=true
	COLLABORATIVE_FILTERING_COMPONENTS=50
	MODEL_UPDATE_INTERVAL=24h
	CACHE_BACKEND=redis
	CACHE_TTL=1h
	REDIS_ADDR=redis:6379

Durations use Go syntax (1h, 30s). Lists are comma separated and
REGION_ENDPOINTS is a comma-separated list of region=url pairs.

# Usage Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	srv := &http.Server{Addr: cfg.Server.Addr()}

# Validation

LoadWithKoanf validates the merged configuration. It rejects a local region
outside the allowed list, allowed regions without an endpoint, malformed
endpoint URLs, non-positive limits and timeouts, and unknown cache backends.

# Thread Safety

Config is immutable after loading and safe for concurrent reads.
*/
package config
