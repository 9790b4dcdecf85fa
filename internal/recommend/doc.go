// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package recommend implements the regional product recommendation engine.
//
// # Architecture
//
// A region serves recommendations from one immutable Snapshot holding:
//
//   - the user × product interaction matrix (missing cells are absent, not 0)
//   - the rank-k factorization of the zero-filled matrix
//   - user-user and item-item cosine similarities over the factors
//   - product features used to enrich and filter results
//
// The ModelStore builds snapshots. It always reads the interaction matrix from
// the region's processed bucket, then either adopts the three persisted
// artifacts from the models bucket or trains and persists a new model.
//
// # Serving
//
// The Engine publishes snapshots through an atomic pointer. Every inference
// call loads the pointer once, so a refresh never blocks reads and a request
// never observes a half-swapped model. Before the first publish every
// inference operation returns ErrNotReady.
//
//   - Recommend: user-based collaborative filtering, padded with and falling
//     back to popular products
//   - Popular: products ranked by total observed interaction weight
//   - Similar: nearest products in item-factor space
//   - Trending: popularity-derived trend ranking for a time window
//   - Aggregate: fan-out to peer regions with MERGE or HIGHEST_SCORE merging
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, objects, peers, logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.LoadOrTrain(ctx); err != nil {
//	    return err
//	}
//	items, err := engine.Recommend(ctx, "user_1", recommend.RecommendOptions{
//	    Count:        10,
//	    ExcludeKnown: true,
//	})
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Refresh and Retrain are
// serialized; a second caller receives ErrRefreshInProgress.
package recommend
