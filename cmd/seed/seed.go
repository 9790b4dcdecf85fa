// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend"
)

// seedResult summarizes one seeding run.
type seedResult struct {
	Bucket   string
	Uploaded []string
	Users    int
	Products int
}

// seedRegion validates the CSV files in dir and uploads them into the
// region's processed bucket, creating the bucket if needed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func seedRegion(ctx context.Context, store objectstore.Store, region, dir string, logger zerolog.Logger) (*seedResult, error) {
	bucket := objectstore.ProcessedBucket(region)
	result := &seedResult{Bucket: bucket}

	matrixData, err := os.ReadFile(filepath.Join(dir, objectstore.InteractionMatrixObject))
	if err != nil {
		return nil, fmt.Errorf("read interaction matrix: %w", err)
	}
	matrix, err := recommend.ParseInteractionMatrix(bytes.NewReader(matrixData))
	if err != nil {
		return nil, fmt.Errorf("parse interaction matrix: %w", err)
	}
	result.Users = matrix.UserCount()
	result.Products = matrix.ProductCount()

	featureData, err := os.ReadFile(filepath.Join(dir, objectstore.ProductFeaturesObject))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn().Str("dir", dir).Msg("product features file not found, uploading matrix only")
		featureData = nil
	case err != nil:
		return nil, fmt.Errorf("read product features: %w", err)
	default:
		_, skipped, err := recommend.ParseProductFeatures(bytes.NewReader(featureData))
		if err != nil {
			return nil, fmt.Errorf("parse product features: %w", err)
		}
		if skipped > 0 {
			logger.Warn().Int("skipped", skipped).Msg("product features contain malformed rows")
		}
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := store.CreateBucket(ctx, bucket); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		logger.Info().Str("bucket", bucket).Msg("created bucket")
	}

	if err := store.Put(ctx, bucket, objectstore.InteractionMatrixObject, matrixData); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectstore.InteractionMatrixObject, err)
	}
	result.Uploaded = append(result.Uploaded, objectstore.InteractionMatrixObject)

	if featureData != nil {
		if err := store.Put(ctx, bucket, objectstore.ProductFeaturesObject, featureData); err != nil {
			return nil, fmt.Errorf("upload %s: %w", objectstore.ProductFeaturesObject, err)
		}
		result.Uploaded = append(result.Uploaded, objectstore.ProductFeaturesObject)
	}

	return result, nil
}
