// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/georec/internal/cache"
	"github.com/tomtom215/georec/internal/logging"
	"github.com/tomtom215/georec/internal/metrics"
	"github.com/tomtom215/georec/internal/models"
	"github.com/tomtom215/georec/internal/recommend"
)

// Query defaults for endpoints without a JSON body.
const (
	defaultSimilarCount  = 10
	defaultTrendingCount = 20
	defaultTrendingHours = 24
)

// userPath validates the user_id path parameter.
type userPath struct {
	UserID string `json:"user_id" validate:"required,identifier"`
}

// productPath validates the product_id path parameter.
type productPath struct {
	ProductID string `json:"product_id" validate:"required,identifier"`
}

// UserRecommendations handles POST /api/v1/recommendations/user/{user_id}.
//
// Responses for requests without filters are cached under
// recommendations:{user}:{count}:{region}; concurrent misses for the same key
// share one engine call.
//
// @Summary Personalized recommendations
// @Description Returns up to count products for the user using collaborative filtering. Unknown users receive popular products.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body models.RecommendationRequest false "Recommendation options"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 503 {object} models.APIResponse "Models not loaded"
// @Router /recommendations/user/{user_id} [post]
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := userPath{UserID: chi.URLParam(r, "user_id")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	var req models.RecommendationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if !h.engine.Ready() {
		respondEngineError(w, r, recommend.ErrNotReady)
		return
	}

	count := req.Count
	if count == 0 {
		count = h.engine.Config().Limits.DefaultCount
	}

	opts := recommend.RecommendOptions{
		Count:        count,
		ExcludeKnown: req.ExcludeKnown(),
		MinRating:    req.MinRating,
		Categories:   req.Categories,
	}

	cacheKey := ""
	if h.cache != nil && cacheable(&req) {
		cacheKey = cache.RecommendationKey(path.UserID, count, cacheRegion(&req))
		if !req.ForceRefresh {
			if resp, ok := h.cachedRecommendations(r, cacheKey); ok {
				resp.Cached = true
				metrics.RecordRecommendation("user", time.Since(start), len(resp.Recommendations), nil)
				respondJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	compute := func() (interface{}, error) {
		ctx, cancel := detachedContext(r, h.requestTimeout)
		defer cancel()

		items, err := h.engine.Recommend(ctx, path.UserID, opts)
		if err != nil {
			return nil, err
		}
		resp := &models.RecommendationResponse{
			UserID:          path.UserID,
			Recommendations: items,
			Region:          h.engine.Region(),
			GeneratedAt:     time.Now().UTC(),
			TotalCount:      len(items),
		}
		if cacheKey != "" {
			h.storeRecommendations(ctx, r, cacheKey, resp)
		}
		return resp, nil
	}

	var (
		v   interface{}
		err error
	)
	if cacheKey != "" {
		v, err, _ = h.flight.Do(cacheKey, compute)
	} else {
		v, err = compute()
	}

	if err != nil {
		metrics.RecordRecommendation("user", time.Since(start), 0, err)
		respondEngineError(w, r, err)
		return
	}

	// Shared results are copied before the per-request timing is set.
	resp := *v.(*models.RecommendationResponse)
	resp.ProcessingTimeMS = elapsedMillis(start)
	metrics.RecordRecommendation("user", time.Since(start), len(resp.Recommendations), nil)

	logging.Ctx(r.Context()).Debug().
		Str("user_id", path.UserID).
		Int("count", resp.TotalCount).
		Msg("served recommendations")
	respondJSON(w, http.StatusOK, &resp)
}

// cacheable reports whether a request uses only the cache key dimensions.
// Filtered requests bypass the cache so results for different filters are
// never mixed.
func cacheable(req *models.RecommendationRequest) bool {
	return len(req.Categories) == 0 && req.MinRating == nil && req.ExcludeKnown()
}

func cacheRegion(req *models.RecommendationRequest) string {
	if req.Region == "" {
		return "default"
	}
	return req.Region
}

// cachedRecommendations reads a cached response. Backend errors and corrupt
// entries are treated as misses.
func (h *Handler) cachedRecommendations(r *http.Request, key string) (*models.RecommendationResponse, bool) {
	data, ok, err := h.cache.Get(r.Context(), key)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp models.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		return nil, false
	}
	return &resp, true
}

func (h *Handler) storeRecommendations(ctx context.Context, r *http.Request, key string, resp *models.RecommendationResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to encode cache entry")
		return
	}
	if err := h.cache.Set(ctx, key, data, h.cacheTTL); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// SimilarProducts handles POST /api/v1/recommendations/similar-products/{product_id}.
//
// @Summary Similar products
// @Description Returns products closest to the given product in item-factor space.
// @Tags Recommendations
// @Produce json
// @Param product_id path string true "Product ID"
// @Param count query int false "Number of products (1-50)" default(10)
// @Success 200 {object} models.SimilarProductsResponse
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 404 {object} models.APIResponse "Unknown product"
// @Failure 503 {object} models.APIResponse "Models not loaded"
// @Router /recommendations/similar-products/{product_id} [post]
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := productPath{ProductID: chi.URLParam(r, "product_id")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	count, ok := getIntParam(r, "count", defaultSimilarCount)
	if !ok {
		respondValidation(w, r, invalidParam("count"))
		return
	}
	query := models.SimilarProductsQuery{Count: count}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	products, err := h.engine.Similar(ctx, path.ProductID, query.Count)
	metrics.RecordRecommendation("similar", time.Since(start), len(products), err)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if len(products) == 0 {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound,
			fmt.Sprintf("No similar products found for product %s", path.ProductID), nil, nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.SimilarProductsResponse{
		ProductID:       path.ProductID,
		SimilarProducts: products,
		Region:          h.engine.Region(),
		GeneratedAt:     time.Now().UTC(),
	})
}

// TrendingProducts handles POST /api/v1/recommendations/trending.
//
// @Summary Trending products
// @Description Returns products ranked by total interaction volume. trend_score and growth_rate are popularity proxies; time_window_hours is echoed but does not change the ranking.
// @Tags Recommendations
// @Produce json
// @Param count query int false "Number of products (1-100)" default(20)
// @Param category query string false "Restrict to a category"
// @Param time_window_hours query int false "Window in hours (1-168)" default(24)
// @Success 200 {object} models.TrendingResponse
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 503 {object} models.APIResponse "Models not loaded"
// @Router /recommendations/trending [post]
func (h *Handler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	count, ok := getIntParam(r, "count", defaultTrendingCount)
	if !ok {
		respondValidation(w, r, invalidParam("count"))
		return
	}
	hours, ok := getIntParam(r, "time_window_hours", defaultTrendingHours)
	if !ok {
		respondValidation(w, r, invalidParam("time_window_hours"))
		return
	}
	query := models.TrendingQuery{
		Count:           count,
		Category:        r.URL.Query().Get("category"),
		TimeWindowHours: hours,
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	products, err := h.engine.Trending(ctx, query.Count, query.Category, query.TimeWindowHours)
	metrics.RecordRecommendation("trending", time.Since(start), len(products), err)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	var category *string
	if query.Category != "" {
		category = &query.Category
	}
	respondJSON(w, http.StatusOK, &models.TrendingResponse{
		TrendingProducts: products,
		Category:         category,
		TimeWindowHours:  query.TimeWindowHours,
		Region:           h.engine.Region(),
		GeneratedAt:      time.Now().UTC(),
	})
}

// CrossRegion handles POST /api/v1/recommendations/cross-region.
//
// @Summary Cross-region recommendations
// @Description Queries the local engine and peer regions concurrently and merges the results. Failed regions are reported and skipped.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.CrossRegionRequest true "Cross-region request"
// @Success 200 {object} models.CrossRegionResponse
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 502 {object} models.APIResponse "All regions failed"
// @Router /recommendations/cross-region [post]
func (h *Handler) CrossRegion(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CrossRegionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	method := recommend.ParseAggregationMethod(req.AggregationMethod)

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.engine.Aggregate(ctx, req.UserID, req.Regions, req.Count, method)
	if err != nil {
		metrics.RecordRecommendation("cross_region", time.Since(start), 0, err)
		var details map[string]interface{}
		if result != nil && len(result.FailedRegions) > 0 {
			details = map[string]interface{}{"failed_regions": result.FailedRegions}
		}
		if details != nil {
			respondError(w, r, http.StatusBadGateway, models.ErrCodeAllRegionsFailed,
				"No region returned recommendations", details, err)
			return
		}
		respondEngineError(w, r, err)
		return
	}
	metrics.RecordRecommendation("cross_region", time.Since(start), len(result.AggregatedRecommendations), nil)

	respondJSON(w, http.StatusOK, &models.CrossRegionResponse{
		UserID:             req.UserID,
		CrossRegionResults: result,
		AggregationMethod:  result.AggregationMethod,
		PrimaryRegion:      h.engine.Region(),
		GeneratedAt:        time.Now().UTC(),
	})
}

// Stats handles GET /api/v1/recommendations/stats.
//
// @Summary Recommendation statistics
// @Description Returns model statistics, cache statistics and uptime for this region.
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.RegionStats
// @Router /recommendations/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()

	cacheStats := models.CacheStats{}
	if h.cache != nil {
		cs := h.cache.Stats(r.Context())
		cacheStats = models.CacheStats{
			Enabled:   true,
			Backend:   string(cs.Backend),
			Hits:      cs.Hits,
			Misses:    cs.Misses,
			Evictions: cs.Evictions,
			KeysCount: cs.Size,
			HitRate:   cs.HitRate,
		}
	}

	respondJSON(w, http.StatusOK, &models.RegionStats{
		Region:        h.engine.Region(),
		ModelStats:    stats,
		CacheStats:    cacheStats,
		RequestCount:  h.engine.RequestCount(),
		FallbackCount: h.engine.FallbackCount(),
		UptimeSeconds: time.Since(stats.StartupTime).Seconds(),
		LastUpdated:   time.Now().UTC(),
	})
}
