// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package validation validates API request structs with go-playground/validator v10.
//
// A single validator instance is shared by all handlers; it caches struct
// metadata after the first use and is safe for concurrent use. Field errors
// are reported under their json or query tag name and convert to the
// VALIDATION_ERROR API error via ToAPIError.
//
// Custom tags:
//
//   - identifier: a user or product ID without whitespace, slashes or URL
//     delimiters, at most 128 bytes
//   - region_name: a region such as us-east-1
//
// Example:
//
//	type RecommendationRequest struct {
//	    Count      int      `json:"count" validate:"omitempty,min=1,max=50"`
//	    Categories []string `json:"categories" validate:"omitempty,max=20,dive,required"`
//	}
package validation
