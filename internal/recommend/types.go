// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"strings"
	"time"
)

// Product holds the known attributes of a product.
type Product struct {
	ID          string   `json:"product_id"`
	Name        string   `json:"product_name,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ProductFeatures maps product ID to attributes. A missing entry means the
// attributes are unknown.
type ProductFeatures map[string]Product

// RecommendationItem is a single recommended product.
type RecommendationItem struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name,omitempty"`
	Category    string   `json:"category,omitempty"`
	Score       float64  `json:"score"`
	Price       *float64 `json:"price,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Description string   `json:"description,omitempty"`
	Region      string   `json:"region,omitempty"`
}

// SimilarProduct is a product close to a reference product in item-factor space.
type SimilarProduct struct {
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name,omitempty"`
	SimilarityScore float64  `json:"similarity_score"`
	Category        string   `json:"category,omitempty"`
	SharedFeatures  []string `json:"shared_features,omitempty"`
}

// TrendingProduct is a product ranked by aggregate interaction volume.
//
// TrendScore and GrowthRate are derived from static totals, not from
// time-bucketed activity. GrowthRateSynthetic is always true until
// timestamped interactions are available.
type TrendingProduct struct {
	ProductID           string  `json:"product_id"`
	ProductName         string  `json:"product_name,omitempty"`
	Category            string  `json:"category,omitempty"`
	TrendScore          float64 `json:"trend_score"`
	InteractionCount    int     `json:"interaction_count"`
	GrowthRate          float64 `json:"growth_rate"`
	GrowthRateSynthetic bool    `json:"growth_rate_synthetic"`
	WindowHours         int     `json:"time_window_hours"`
	Region              string  `json:"region"`
}

// RecommendOptions controls a personalized recommendation request.
type RecommendOptions struct {
	// Count is the maximum number of items. Zero selects the configured default.
	Count int

	// ExcludeKnown drops products the user has already interacted with.
	ExcludeKnown bool

	// MinRating drops products whose known rating is below this value.
	MinRating *float64

	// Categories restricts results to these categories. Products with an
	// unknown category are kept.
	Categories []string
}

// AggregationMethod selects how cross-region results are merged.
type AggregationMethod string

// Aggregation methods. WeightedAverage and RoundRobin are accepted names that
// currently resolve to Merge.
const (
	AggregationMerge           AggregationMethod = "merge"
	AggregationHighestScore    AggregationMethod = "highest_score"
	AggregationWeightedAverage AggregationMethod = "weighted_average"
	AggregationRoundRobin      AggregationMethod = "round_robin"
)

// ParseAggregationMethod normalizes a method name. Unknown values map to Merge.
func ParseAggregationMethod(s string) AggregationMethod {
	switch AggregationMethod(strings.ToLower(strings.TrimSpace(s))) {
	case AggregationHighestScore:
		return AggregationHighestScore
	default:
		return AggregationMerge
	}
}

// AggregateResult is the outcome of a cross-region aggregation.
type AggregateResult struct {
	AggregatedRecommendations []RecommendationItem            `json:"aggregated_recommendations"`
	RegionResults             map[string][]RecommendationItem `json:"region_results"`
	RegionsQueried            []string                        `json:"regions_queried"`
	FailedRegions             map[string]string               `json:"failed_regions,omitempty"`
	AggregationMethod         AggregationMethod               `json:"aggregation_method"`
}

// Stats summarizes the active snapshot.
type Stats struct {
	ModelsLoaded           bool       `json:"models_loaded"`
	LoadedFromStore        bool       `json:"loaded_from_store"`
	LastModelUpdate        *time.Time `json:"last_model_update"`
	TrainedAt              *time.Time `json:"trained_at"`
	Region                 string     `json:"region"`
	StartupTime            time.Time  `json:"startup_time"`
	UserCount              int        `json:"user_count"`
	ProductCount           int        `json:"product_count"`
	TotalInteractions      int        `json:"total_interactions"`
	MatrixDensity          float64    `json:"matrix_density"`
	SVDComponents          int        `json:"svd_components"`
	ExplainedVarianceRatio float64    `json:"explained_variance_ratio"`
	ModelVersion           int64      `json:"model_version"`
	LastError              string     `json:"last_error,omitempty"`
}
