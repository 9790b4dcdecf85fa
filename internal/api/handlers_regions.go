// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/georec/internal/models"
	"github.com/tomtom215/georec/internal/region"
)

// CurrentRegion handles GET /api/v1/regions/current.
//
// @Summary Current region
// @Tags Regions
// @Produce json
// @Success 200 {object} models.CurrentRegionResponse
// @Router /regions/current [get]
func (h *Handler) CurrentRegion(w http.ResponseWriter, _ *http.Request) {
	local := h.regions.Local()
	endpoint, _ := h.regions.Endpoint(local)
	respondJSON(w, http.StatusOK, &models.CurrentRegionResponse{
		Region:          local,
		Endpoint:        endpoint,
		AllowedRegions:  h.regions.Allowed(),
		FailoverEnabled: h.regions.FailoverEnabled(),
	})
}

// AllRegions handles GET /api/v1/regions/all.
//
// @Summary All configured regions
// @Description Lists region endpoints, the failover order and each peer's circuit breaker state.
// @Tags Regions
// @Produce json
// @Success 200 {object} models.AllRegionsResponse
// @Router /regions/all [get]
func (h *Handler) AllRegions(w http.ResponseWriter, _ *http.Request) {
	failover := h.regions.FailoverRegions()
	states := make(map[string]string, len(failover))
	for _, name := range failover {
		if state := h.regions.BreakerState(name); state != "" {
			states[name] = state
		}
	}
	respondJSON(w, http.StatusOK, &models.AllRegionsResponse{
		CurrentRegion:   h.regions.Local(),
		AllRegions:      h.regions.Endpoints(),
		FailoverRegions: failover,
		BreakerStates:   states,
	})
}

// RegionsHealth handles GET /api/v1/regions/health.
//
// @Summary Probe every region
// @Description Calls /api/v1/health/ on every configured region concurrently.
// @Tags Regions
// @Produce json
// @Success 200 {object} region.HealthReport
// @Router /regions/health [get]
func (h *Handler) RegionsHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.regions.Health(r.Context()))
}

// RegionsLatency handles GET /api/v1/regions/latency.
//
// @Summary Latency to every region
// @Tags Regions
// @Produce json
// @Success 200 {object} region.LatencyReport
// @Router /regions/latency [get]
func (h *Handler) RegionsLatency(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.regions.Latency(r.Context()))
}

// FailoverInfo handles GET /api/v1/regions/failover.
//
// @Summary Failover configuration
// @Tags Regions
// @Produce json
// @Success 200 {object} models.FailoverInfoResponse
// @Router /regions/failover [get]
func (h *Handler) FailoverInfo(w http.ResponseWriter, _ *http.Request) {
	if !h.regions.FailoverEnabled() {
		respondJSON(w, http.StatusOK, &models.FailoverInfoResponse{
			FailoverEnabled: false,
			Message:         "Failover is disabled in configuration",
		})
		return
	}
	failover := h.regions.FailoverRegions()
	respondJSON(w, http.StatusOK, &models.FailoverInfoResponse{
		FailoverEnabled: true,
		CurrentRegion:   h.regions.Local(),
		FailoverRegions: failover,
		FailoverOrder:   failover,
	})
}

// TestFailover handles POST /api/v1/regions/failover/{target_region}.
//
// @Summary Test failover connectivity
// @Description Probes the target region. Connectivity failures are reported in the body with status 200.
// @Tags Regions
// @Produce json
// @Param target_region path string true "Target region"
// @Success 200 {object} region.FailoverResult
// @Failure 400 {object} models.APIResponse "Invalid target region"
// @Router /regions/failover/{target_region} [post]
func (h *Handler) TestFailover(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target_region")

	result, err := h.regions.TestFailover(r.Context(), target)
	if err != nil {
		if errors.Is(err, region.ErrUnknownRegion) || errors.Is(err, region.ErrSameRegion) || errors.Is(err, region.ErrNoEndpoint) {
			respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(),
				map[string]interface{}{"allowed_regions": h.regions.Allowed()}, nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failover test failed", nil, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
