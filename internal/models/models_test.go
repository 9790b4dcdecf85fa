// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package models

import (
	"testing"

	"github.com/tomtom215/georec/internal/validation"
)

func TestRecommendationRequest_ExcludeKnown(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	tests := []struct {
		name string
		req  RecommendationRequest
		want bool
	}{
		{"default", RecommendationRequest{}, true},
		{"explicit true", RecommendationRequest{ExcludePurchased: &yes}, true},
		{"explicit false", RecommendationRequest{ExcludePurchased: &no}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.ExcludeKnown(); got != tt.want {
				t.Errorf("ExcludeKnown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	low, high := 0.0, 5.5
	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
	}{
		{"empty recommendation request", &RecommendationRequest{}, false},
		{"count at max", &RecommendationRequest{Count: 50}, false},
		{"count over max", &RecommendationRequest{Count: 51}, true},
		{"min rating zero", &RecommendationRequest{MinRating: &low}, false},
		{"min rating over five", &RecommendationRequest{MinRating: &high}, true},
		{"empty category", &RecommendationRequest{Categories: []string{""}}, true},
		{"bad region", &RecommendationRequest{Region: "EU"}, true},
		{"cross region minimal", &CrossRegionRequest{UserID: "user_1"}, false},
		{"cross region missing user", &CrossRegionRequest{}, true},
		{"cross region bad method", &CrossRegionRequest{UserID: "u", AggregationMethod: "median"}, true},
		{"cross region accepted alias", &CrossRegionRequest{UserID: "u", AggregationMethod: "round_robin"}, false},
		{"similar count zero", &SimilarProductsQuery{Count: 0}, true},
		{"similar count ok", &SimilarProductsQuery{Count: 10}, false},
		{"trending window too large", &TrendingQuery{Count: 20, TimeWindowHours: 169}, true},
		{"trending ok", &TrendingQuery{Count: 100, TimeWindowHours: 168}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validation.ValidateStruct(tt.input)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
