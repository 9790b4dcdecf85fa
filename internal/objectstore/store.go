// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package objectstore

import (
	"context"
	"errors"
	"strings"
)

// Errors returned by object stores.
var (
	// ErrObjectNotFound is returned when a key does not exist in a bucket.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when reading from a bucket that was never created.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrInvalidName is returned for empty bucket or object names.
	ErrInvalidName = errors.New("invalid bucket or object name")
)

// Object names used by the recommendation engine.
const (
	InteractionMatrixObject = "user_item_matrix.csv"
	ProductFeaturesObject   = "products_with_features.csv"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
}

// Store is a minimal bucket/key blob store.
type Store interface {
	// Get returns the object contents. Returns ErrObjectNotFound when absent.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put writes an object, creating the bucket if needed.
	Put(ctx context.Context, bucket, key string, data []byte) error

	// BucketExists reports whether the bucket has been created.
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// CreateBucket creates the bucket. Creating an existing bucket is not an error.
	CreateBucket(ctx context.Context, bucket string) error

	// List returns the objects in a bucket ordered by key.
	List(ctx context.Context, bucket string) ([]ObjectInfo, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, key string) error
}

// ProcessedBucket returns the input data bucket for a region.
func ProcessedBucket(region string) string {
	return "processed-" + regionSuffix(region)
}

// ModelsBucket returns the model artifact bucket for a region.
func ModelsBucket(region string) string {
	return "models-" + regionSuffix(region)
}

func regionSuffix(region string) string {
	return strings.ReplaceAll(region, "-", "")
}
