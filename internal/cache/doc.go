// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package cache provides the response cache used by the recommendation API.

Two backends implement the Cache interface:

  - MemoryCache: a per-process LRU with per-entry expiry (LRUCache)
  - RedisCache: a Redis-backed cache shared by the replicas of a region

Values are opaque byte slices, normally JSON-encoded API responses. A backend
failure is returned as an error but callers treat it as a miss, so the cache
can never make a request fail.

# Keys

Recommendation responses are stored under

	recommendations:{user_id}:{count}:{region}

Clear accepts a glob pattern such as "recommendations:*" or
"recommendations:u123:*". The memory backend matches with path.Match, the
Redis backend with SCAN MATCH.

# Usage Example

	c, err := cache.New(ctx, cache.Config{
	    Backend:  cache.BackendMemory,
	    TTL:      time.Hour,
	    Capacity: 10000,
	}, logger)
	if err != nil {
	    return err
	}
	defer c.Close()

	key := cache.RecommendationKey("u123", 10, "us-east-1")
	if data, ok, _ := c.Get(ctx, key); ok {
	    // serve cached response
	}
	_ = c.Set(ctx, key, payload, 0)

# Thread Safety

Both backends are safe for concurrent use.
*/
package cache
