// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import "errors"

// Engine errors. Callers should compare with errors.Is.
var (
	// ErrNotReady is returned by inference calls before the first snapshot is published.
	ErrNotReady = errors.New("recommendation models not loaded")

	// ErrDataUnavailable is returned when the interaction matrix cannot be read.
	ErrDataUnavailable = errors.New("interaction data unavailable")

	// ErrTrainingFailed is returned when factorization or similarity computation fails.
	ErrTrainingFailed = errors.New("model training failed")

	// ErrPersistFailed is returned when a trained model cannot be written to the models bucket.
	ErrPersistFailed = errors.New("model persistence failed")

	// ErrRefreshInProgress is returned when a refresh is requested while another is running.
	ErrRefreshInProgress = errors.New("model refresh already in progress")

	// ErrAllRegionsFailed is returned when no region produced a result for an aggregate call.
	ErrAllRegionsFailed = errors.New("all regions failed")
)
