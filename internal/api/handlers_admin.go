// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/tomtom215/georec/internal/models"
	"github.com/tomtom215/georec/internal/recommend"
)

// defaultClearPattern matches every cached recommendation response.
const defaultClearPattern = "recommendations:*"

// RefreshModels handles POST /api/v1/recommendations/refresh-models.
//
// The refresh runs in the background; the response only acknowledges that it
// started. Calls closer together than the configured minimum interval get 429
// and a call while a refresh is running gets 409.
//
// @Summary Refresh recommendation models
// @Description Reloads artifacts or retrains (retrain=true) in the background. The active model keeps serving until the new one is published.
// @Tags Admin
// @Produce json
// @Param retrain query bool false "Ignore persisted artifacts and retrain"
// @Success 202 {object} models.RefreshResponse
// @Failure 409 {object} models.APIResponse "Refresh already running"
// @Failure 429 {object} models.APIResponse "Refresh throttled"
// @Router /recommendations/refresh-models [post]
func (h *Handler) RefreshModels(w http.ResponseWriter, r *http.Request) {
	retrain, _ := strconv.ParseBool(r.URL.Query().Get("retrain"))

	if h.refreshing.Load() {
		respondError(w, r, http.StatusConflict, models.ErrCodeRefreshRunning,
			recommend.ErrRefreshInProgress.Error(), nil, nil)
		return
	}
	if reservation := h.refreshLimiter.Reserve(); reservation.Delay() > 0 {
		retryAfter := reservation.Delay()
		reservation.Cancel()
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		respondError(w, r, http.StatusTooManyRequests, models.ErrCodeRefreshThrottled,
			fmt.Sprintf("Model refresh throttled, retry in %s", retryAfter.Round(time.Second)), nil, nil)
		return
	}
	if !h.refreshing.CompareAndSwap(false, true) {
		respondError(w, r, http.StatusConflict, models.ErrCodeRefreshRunning,
			recommend.ErrRefreshInProgress.Error(), nil, nil)
		return
	}

	h.wg.Add(1)
	go h.runRefresh(retrain)

	respondJSON(w, http.StatusAccepted, &models.RefreshResponse{
		Message:   "Model refresh initiated",
		Region:    h.engine.Region(),
		Retrain:   retrain,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) runRefresh(retrain bool) {
	defer h.wg.Done()
	defer h.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(h.baseCtx, h.refreshTimeout)
	defer cancel()

	start := time.Now()
	var err error
	if retrain {
		err = h.engine.Retrain(ctx)
	} else {
		err = h.engine.Refresh(ctx)
	}

	switch {
	case err == nil:
		h.logger.Info().Bool("retrain", retrain).Dur("duration", time.Since(start)).Msg("model refresh completed")
	case errors.Is(err, recommend.ErrRefreshInProgress):
		h.logger.Info().Msg("model refresh skipped, another refresh is running")
	default:
		h.logger.Error().Err(err).Bool("retrain", retrain).Msg("model refresh failed, previous model kept")
	}
}

// ClearCache handles POST /api/v1/recommendations/clear-cache.
//
// @Summary Clear recommendation cache
// @Description Removes cached responses whose key matches the glob pattern.
// @Tags Admin
// @Produce json
// @Param pattern query string false "Glob pattern" default(recommendations:*)
// @Success 200 {object} models.ClearCacheResponse
// @Failure 400 {object} models.APIResponse "Invalid pattern"
// @Router /recommendations/clear-cache [post]
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		pattern = defaultClearPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"pattern is not a valid glob", map[string]interface{}{"field": "pattern"}, nil)
		return
	}

	deleted := 0
	if h.cache != nil {
		n, err := h.cache.Clear(r.Context(), pattern)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal,
				"Failed to clear cache", nil, err)
			return
		}
		deleted = n
	}

	message := "No cache entries found to clear"
	if deleted > 0 {
		message = fmt.Sprintf("Cleared %d cache entries", deleted)
		h.logger.Info().Int("deleted", deleted).Str("pattern", pattern).Msg("cache cleared")
	}

	respondJSON(w, http.StatusOK, &models.ClearCacheResponse{
		Message:      message,
		Pattern:      pattern,
		DeletedCount: deleted,
		Region:       h.engine.Region(),
		Timestamp:    time.Now().UTC(),
	})
}

// OnModelPublished drops cached recommendation responses computed from the
// previous model. Register it with Engine.OnPublish.
func (h *Handler) OnModelPublished(snap *recommend.Snapshot) {
	if h.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(h.baseCtx, h.requestTimeout)
	defer cancel()

	n, err := h.cache.Clear(ctx, defaultClearPattern)
	if err != nil {
		h.logger.Warn().Err(err).Int64("model_version", snap.Version).Msg("failed to invalidate recommendation cache")
		return
	}
	h.logger.Debug().Int("deleted", n).Int64("model_version", snap.Version).Msg("recommendation cache invalidated")
}
