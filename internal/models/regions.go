// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package models

// CurrentRegionResponse is the body of GET /regions/current.
type CurrentRegionResponse struct {
	Region          string   `json:"region"`
	Endpoint        string   `json:"endpoint"`
	AllowedRegions  []string `json:"allowed_regions"`
	FailoverEnabled bool     `json:"failover_enabled"`
}

// AllRegionsResponse is the body of GET /regions/all.
type AllRegionsResponse struct {
	CurrentRegion   string            `json:"current_region"`
	AllRegions      map[string]string `json:"all_regions"`
	FailoverRegions []string          `json:"failover_regions"`
	BreakerStates   map[string]string `json:"breaker_states,omitempty"`
}

// FailoverInfoResponse is the body of GET /regions/failover.
type FailoverInfoResponse struct {
	FailoverEnabled bool     `json:"failover_enabled"`
	Message         string   `json:"message,omitempty"`
	CurrentRegion   string   `json:"current_region,omitempty"`
	FailoverRegions []string `json:"failover_regions,omitempty"`
	FailoverOrder   []string `json:"failover_order,omitempty"`
}
