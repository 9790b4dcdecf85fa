// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package region

import (
	"fmt"
	"time"
)

// Config configures the peer client.
type Config struct {
	// Local is the name of this region.
	Local string

	// Allowed lists every region in the deployment, in failover order.
	Allowed []string

	// Endpoints maps region names to base URLs such as "http://localhost:8001".
	Endpoints map[string]string

	// FailoverEnabled is reported by the failover view.
	FailoverEnabled bool

	// ProbeTimeout bounds health and latency probes. Default: 5s.
	ProbeTimeout time.Duration

	// FailoverTimeout bounds failover connectivity tests. Default: 10s.
	FailoverTimeout time.Duration

	// ClientTimeout is the http.Client timeout applied to every request. Default: 10s.
	ClientTimeout time.Duration

	Breaker BreakerConfig
}

// BreakerConfig holds per-region circuit breaker settings.
type BreakerConfig struct {
	MaxRequests  uint32        // Trial requests allowed in half-open state
	Interval     time.Duration // Count reset period in closed state
	Timeout      time.Duration // Open duration before half-open
	MinRequests  uint32        // Requests required before the ratio is evaluated
	FailureRatio float64       // Failure ratio that opens the circuit
}

// DefaultConfig returns the four-region local development layout.
func DefaultConfig() Config {
	return Config{
		Local:   "us-east-1",
		Allowed: []string{"us-east-1", "us-west-1", "eu-west-1", "ap-south-1"},
		Endpoints: map[string]string{
			"us-east-1":  "http://localhost:8000",
			"us-west-1":  "http://localhost:8001",
			"eu-west-1":  "http://localhost:8002",
			"ap-south-1": "http://localhost:8003",
		},
		FailoverEnabled: true,
		ProbeTimeout:    5 * time.Second,
		FailoverTimeout: 10 * time.Second,
		ClientTimeout:   10 * time.Second,
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.6,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Local == "" {
		return fmt.Errorf("local region is required")
	}
	if !c.IsAllowed(c.Local) {
		return fmt.Errorf("local region %q is not in allowed regions %v", c.Local, c.Allowed)
	}
	for region := range c.Endpoints {
		if !c.IsAllowed(region) {
			return fmt.Errorf("endpoint configured for unknown region %q", region)
		}
	}
	if c.ProbeTimeout <= 0 || c.FailoverTimeout <= 0 || c.ClientTimeout <= 0 {
		return fmt.Errorf("region timeouts must be positive")
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be in (0, 1], got %f", c.Breaker.FailureRatio)
	}
	return nil
}

// IsAllowed reports whether region is part of the deployment.
func (c *Config) IsAllowed(region string) bool {
	for _, r := range c.Allowed {
		if r == region {
			return true
		}
	}
	return false
}
