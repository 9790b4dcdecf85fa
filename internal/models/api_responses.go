// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotReady         = "ENGINE_NOT_READY"
	ErrCodeAllRegionsFailed = "ALL_REGIONS_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRefreshThrottled = "REFRESH_THROTTLED"
	ErrCodeRefreshRunning   = "REFRESH_IN_PROGRESS"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// APIResponse is the envelope used for error responses and simple
// acknowledgements.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error code with a human-readable message.
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "count must be at most 50",
//	  "details": {"field": "count", "tag": "max", "value": 500}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
