// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package models

import "time"

// Health status values.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
	HealthNotReady  = "not_ready"
	HealthReady     = "ready"
	HealthAlive     = "alive"
)

// HealthResponse is the body of GET /health/.
type HealthResponse struct {
	Status    string    `json:"status"`
	Region    string    `json:"region"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Status       string    `json:"status"`
	Region       string    `json:"region"`
	ModelsLoaded bool      `json:"models_loaded"`
	LastError    string    `json:"last_error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ServiceHealth is the status of one dependency.
type ServiceHealth struct {
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DetailedHealthResponse is the body of GET /health/detailed.
type DetailedHealthResponse struct {
	Status    string                   `json:"status"`
	Region    string                   `json:"region"`
	Version   string                   `json:"version"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
}
