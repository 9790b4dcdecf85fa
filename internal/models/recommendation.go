// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package models

import (
	"time"

	"github.com/tomtom215/georec/internal/recommend"
)

// RecommendationRequest is the body of POST /recommendations/user/{user_id}.
type RecommendationRequest struct {
	Count      int      `json:"count" validate:"omitempty,min=1,max=50" example:"10"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=50,dive,required"`
	// ExcludePurchased defaults to true when omitted.
	ExcludePurchased *bool    `json:"exclude_purchased,omitempty"`
	MinRating        *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5" example:"4"`
	ForceRefresh     bool     `json:"force_refresh,omitempty"`
	Region           string   `json:"region,omitempty" validate:"omitempty,region_name"`
}

// ExcludeKnown resolves the exclude_purchased default.
func (r *RecommendationRequest) ExcludeKnown() bool {
	return r.ExcludePurchased == nil || *r.ExcludePurchased
}

// RecommendationResponse is the personalized recommendation list. The same
// shape is returned by peer regions.
type RecommendationResponse struct {
	UserID           string                         `json:"user_id"`
	Recommendations  []recommend.RecommendationItem `json:"recommendations"`
	Region           string                         `json:"region"`
	GeneratedAt      time.Time                      `json:"generated_at"`
	ProcessingTimeMS float64                        `json:"processing_time_ms"`
	TotalCount       int                            `json:"total_count"`
	Cached           bool                           `json:"cached,omitempty"`
}

// SimilarProductsQuery holds the query parameters of the similar products endpoint.
type SimilarProductsQuery struct {
	Count int `query:"count" validate:"min=1,max=50"`
}

// SimilarProductsResponse lists products similar to ProductID.
type SimilarProductsResponse struct {
	ProductID       string                     `json:"product_id"`
	SimilarProducts []recommend.SimilarProduct `json:"similar_products"`
	Region          string                     `json:"region"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// TrendingQuery holds the query parameters of the trending endpoint.
type TrendingQuery struct {
	Count           int    `query:"count" validate:"min=1,max=100"`
	Category        string `query:"category" validate:"omitempty,max=128"`
	TimeWindowHours int    `query:"time_window_hours" validate:"min=1,max=168"`
}

// TrendingResponse lists trending products. TrendScore and GrowthRate of
// each product are popularity proxies, see recommend.TrendingProduct.
type TrendingResponse struct {
	TrendingProducts []recommend.TrendingProduct `json:"trending_products"`
	Category         *string                     `json:"category"`
	TimeWindowHours  int                         `json:"time_window_hours"`
	Region           string                      `json:"region"`
	GeneratedAt      time.Time                   `json:"generated_at"`
}

// CrossRegionRequest is the body of POST /recommendations/cross-region.
type CrossRegionRequest struct {
	UserID            string   `json:"user_id" validate:"required,identifier" example:"user_1"`
	Regions           []string `json:"regions,omitempty" validate:"omitempty,max=16,unique,dive,region_name"`
	Count             int      `json:"count" validate:"omitempty,min=1,max=50" example:"10"`
	AggregationMethod string   `json:"aggregation_method,omitempty" validate:"omitempty,oneof=merge highest_score weighted_average round_robin" example:"merge"`
}

// CrossRegionResponse wraps the aggregation result.
type CrossRegionResponse struct {
	UserID             string                      `json:"user_id"`
	CrossRegionResults *recommend.AggregateResult  `json:"cross_region_results"`
	AggregationMethod  recommend.AggregationMethod `json:"aggregation_method"`
	PrimaryRegion      string                      `json:"primary_region"`
	GeneratedAt        time.Time                   `json:"generated_at"`
}

// CacheStats describes the response cache.
type CacheStats struct {
	Enabled   bool    `json:"enabled"`
	Backend   string  `json:"backend,omitempty"`
	Hits      int64   `json:"cache_hits"`
	Misses    int64   `json:"cache_misses"`
	Evictions int64   `json:"evictions"`
	KeysCount int     `json:"keys_count"`
	HitRate   float64 `json:"hit_rate"`
}

// RegionStats is the body of GET /recommendations/stats.
type RegionStats struct {
	Region        string          `json:"region"`
	ModelStats    recommend.Stats `json:"model_stats"`
	CacheStats    CacheStats      `json:"cache_stats"`
	RequestCount  int64           `json:"request_count"`
	FallbackCount int64           `json:"fallback_count"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// RefreshResponse acknowledges an asynchronous model refresh.
type RefreshResponse struct {
	Message   string    `json:"message"`
	Region    string    `json:"region"`
	Retrain   bool      `json:"retrain"`
	Timestamp time.Time `json:"timestamp"`
}

// ClearCacheResponse reports how many cache entries were removed.
type ClearCacheResponse struct {
	Message      string    `json:"message"`
	Pattern      string    `json:"pattern"`
	DeletedCount int       `json:"deleted_count"`
	Region       string    `json:"region"`
	Timestamp    time.Time `json:"timestamp"`
}
