// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package objectstore provides bucket/key blob storage for recommendation data.
//
// Each region keeps two buckets:
//
//   - processed-{region}: input tables (interaction matrix, product features)
//   - models-{region}: trained model artifacts
//
// The region suffix is the region name with dashes removed, so us-east-1 uses
// processed-useast1 and models-useast1.
//
// # Backends
//
// BadgerStore persists objects in an embedded BadgerDB instance. It is the
// default backend for single-node deployments and is also used in tests via
// badger's in-memory mode.
//
// # Usage
//
//	db, _ := badger.Open(badger.DefaultOptions("/data/georec"))
//	store := objectstore.NewBadgerStore(db)
//
//	data, err := store.Get(ctx, objectstore.ProcessedBucket("us-east-1"), "user_item_matrix.csv")
//	if errors.Is(err, objectstore.ErrObjectNotFound) {
//	    // no data uploaded yet
//	}
package objectstore
