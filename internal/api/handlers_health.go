// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/georec/internal/models"
	"github.com/tomtom215/georec/internal/objectstore"
)

// healthProbeTimeout bounds each dependency probe of the detailed check.
const healthProbeTimeout = 3 * time.Second

// Health handles GET /api/v1/health/. Peer regions probe this endpoint.
//
// @Summary Basic health check
// @Description Returns 200 while the process is serving HTTP.
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health/ [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{
		Status:    models.HealthHealthy,
		Region:    h.engine.Region(),
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// @Summary Kubernetes liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"status": models.HealthAlive,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 until the first model snapshot has been published.
//
// @Summary Kubernetes readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.ReadinessResponse "Models loaded"
// @Failure 503 {object} models.ReadinessResponse "Models still loading"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := &models.ReadinessResponse{
		Status:       models.HealthReady,
		Region:       h.engine.Region(),
		ModelsLoaded: h.engine.Ready(),
		Timestamp:    time.Now().UTC(),
	}
	status := http.StatusOK
	if !resp.ModelsLoaded {
		resp.Status = models.HealthNotReady
		resp.LastError = h.engine.Stats().LastError
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}

// HealthDetailed handles GET /api/v1/health/detailed.
//
// @Summary Detailed health check
// @Description Reports the model, object store and cache individually. Overall status is degraded when any of them is unhealthy.
// @Tags Health
// @Produce json
// @Success 200 {object} models.DetailedHealthResponse
// @Router /health/detailed [get]
func (h *Handler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	resp := &models.DetailedHealthResponse{
		Status:    models.HealthHealthy,
		Region:    h.engine.Region(),
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]models.ServiceHealth, 3),
	}

	resp.Services["model"] = h.modelHealth()
	if h.objects != nil {
		resp.Services["object_store"] = h.objectStoreHealth(r.Context())
	}
	if h.cache != nil {
		resp.Services["cache"] = h.cacheHealth(r.Context())
	}

	for _, svc := range resp.Services {
		if svc.Status != models.HealthHealthy {
			resp.Status = models.HealthDegraded
			break
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) modelHealth() models.ServiceHealth {
	stats := h.engine.Stats()
	if !stats.ModelsLoaded {
		return models.ServiceHealth{Status: models.HealthNotReady, Error: stats.LastError}
	}
	return models.ServiceHealth{
		Status: models.HealthHealthy,
		Details: map[string]interface{}{
			"model_version": stats.ModelVersion,
			"user_count":    stats.UserCount,
			"product_count": stats.ProductCount,
		},
	}
}

func (h *Handler) objectStoreHealth(ctx context.Context) models.ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	bucket := objectstore.ProcessedBucket(h.engine.Region())
	exists, err := h.objects.BucketExists(ctx, bucket)
	switch {
	case err != nil:
		return models.ServiceHealth{Status: models.HealthUnhealthy, Error: err.Error()}
	case !exists:
		return models.ServiceHealth{
			Status:  models.HealthUnhealthy,
			Error:   "processed bucket missing",
			Details: map[string]interface{}{"bucket": bucket},
		}
	}
	return models.ServiceHealth{
		Status:  models.HealthHealthy,
		Details: map[string]interface{}{"bucket": bucket},
	}
}

func (h *Handler) cacheHealth(ctx context.Context) models.ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		return models.ServiceHealth{Status: models.HealthUnhealthy, Error: err.Error()}
	}
	stats := h.cache.Stats(ctx)
	return models.ServiceHealth{
		Status: models.HealthHealthy,
		Details: map[string]interface{}{
			"backend":    string(stats.Backend),
			"keys_count": stats.Size,
		},
	}
}
