// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package region

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/georec/internal/metrics"
)

// Probe statuses.
const (
	StatusHealthy     = "healthy"
	StatusUnhealthy   = "unhealthy"
	StatusUnreachable = "unreachable"
	StatusReachable   = "reachable"
	StatusError       = "error"
	StatusLocal       = "local"
)

// RegionHealth is the result of probing one region.
type RegionHealth struct {
	Region         string  `json:"region"`
	Status         string  `json:"status"`
	ResponseTimeMS float64 `json:"response_time_ms,omitempty"`
	Endpoint       string  `json:"endpoint"`
	Error          string  `json:"error,omitempty"`
}

// HealthReport summarizes every configured region.
type HealthReport struct {
	Timestamp      time.Time      `json:"timestamp"`
	OverallHealth  string         `json:"overall_health"`
	HealthyRegions int            `json:"healthy_regions"`
	TotalRegions   int            `json:"total_regions"`
	Regions        []RegionHealth `json:"regions"`
}

// RegionLatency is the round-trip time to one region.
type RegionLatency struct {
	Region    string   `json:"region"`
	LatencyMS *float64 `json:"latency_ms"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
}

// LatencyStats aggregates the positive latencies of a report.
type LatencyStats struct {
	MinLatencyMS float64 `json:"min_latency_ms"`
	MaxLatencyMS float64 `json:"max_latency_ms"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
}

// LatencyReport is the latency from the local region to every region.
type LatencyReport struct {
	SourceRegion   string          `json:"source_region"`
	Timestamp      time.Time       `json:"timestamp"`
	LatencyResults []RegionLatency `json:"latency_results"`
	Statistics     *LatencyStats   `json:"statistics,omitempty"`
}

// FailoverResult is the outcome of a failover connectivity test.
type FailoverResult struct {
	Message        string    `json:"message"`
	SourceRegion   string    `json:"source_region"`
	TargetRegion   string    `json:"target_region"`
	TargetEndpoint string    `json:"target_endpoint"`
	TargetStatus   string    `json:"target_status"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// probe issues GET {endpoint}/api/v1/health/ and returns the status code and
// round-trip time.
func (c *Client) probe(ctx context.Context, endpoint string, timeout time.Duration) (int, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/api/v1/health/", http.NoBody)
	if err != nil {
		return 0, 0, fmt.Errorf("create request failed: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return 0, elapsed, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, elapsed, nil
}

// CheckRegion probes a single region's health endpoint.
func (c *Client) CheckRegion(ctx context.Context, region string) RegionHealth {
	endpoint := c.config.Endpoints[region]
	result := RegionHealth{Region: region, Endpoint: endpoint}

	status, elapsed, err := c.probe(ctx, endpoint, c.config.ProbeTimeout)
	switch {
	case err != nil:
		result.Status = StatusUnreachable
		result.Error = err.Error()
	case status == http.StatusOK:
		result.Status = StatusHealthy
		result.ResponseTimeMS = roundMillis(elapsed)
	default:
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("HTTP %d", status)
	}

	if region != c.config.Local {
		metrics.SetRegionHealth(region, result.Status == StatusHealthy)
	}
	return result
}

// Health probes every region with a configured endpoint concurrently.
// Regions are reported in name order.
func (c *Client) Health(ctx context.Context) HealthReport {
	regions := c.endpointRegions()
	results := make([]RegionHealth, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			results[i] = c.CheckRegion(ctx, region)
		}(i, region)
	}
	wg.Wait()

	healthy := 0
	for _, r := range results {
		if r.Status == StatusHealthy {
			healthy++
		}
	}
	overall := StatusHealthy
	if healthy != len(results) {
		overall = "degraded"
	}

	return HealthReport{
		Timestamp:      time.Now().UTC(),
		OverallHealth:  overall,
		HealthyRegions: healthy,
		TotalRegions:   len(results),
		Regions:        results,
	}
}

// Latency measures the round trip to every region. The local region reports
// zero without a network call.
func (c *Client) Latency(ctx context.Context) LatencyReport {
	regions := c.endpointRegions()
	results := make([]RegionLatency, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			results[i] = c.measure(ctx, region)
		}(i, region)
	}
	wg.Wait()

	report := LatencyReport{
		SourceRegion:   c.config.Local,
		Timestamp:      time.Now().UTC(),
		LatencyResults: results,
	}

	var sum float64
	var n int
	stats := LatencyStats{MinLatencyMS: math.Inf(1)}
	for _, r := range results {
		if r.LatencyMS == nil || *r.LatencyMS <= 0 {
			continue
		}
		v := *r.LatencyMS
		stats.MinLatencyMS = math.Min(stats.MinLatencyMS, v)
		stats.MaxLatencyMS = math.Max(stats.MaxLatencyMS, v)
		sum += v
		n++
	}
	if n > 0 {
		stats.AvgLatencyMS = math.Round(sum/float64(n)*100) / 100
		report.Statistics = &stats
	}
	return report
}

func (c *Client) measure(ctx context.Context, region string) RegionLatency {
	if region == c.config.Local {
		zero := 0.0
		return RegionLatency{Region: region, LatencyMS: &zero, Status: StatusLocal}
	}

	status, elapsed, err := c.probe(ctx, c.config.Endpoints[region], c.config.ProbeTimeout)
	if err != nil {
		return RegionLatency{Region: region, Status: StatusUnreachable, Error: err.Error()}
	}

	ms := roundMillis(elapsed)
	result := RegionLatency{Region: region, LatencyMS: &ms, Status: StatusReachable}
	if status != http.StatusOK {
		result.Status = StatusError
	}
	return result
}

// TestFailover checks connectivity to target. Validation failures are
// returned as errors; connectivity failures are reported in the result.
func (c *Client) TestFailover(ctx context.Context, target string) (*FailoverResult, error) {
	if !c.config.IsAllowed(target) {
		return nil, fmt.Errorf("%w: %s, allowed regions: %v", ErrUnknownRegion, target, c.config.Allowed)
	}
	if target == c.config.Local {
		return nil, ErrSameRegion
	}
	endpoint, ok := c.config.Endpoints[target]
	if !ok || endpoint == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoEndpoint, target)
	}

	result := &FailoverResult{
		SourceRegion:   c.config.Local,
		TargetRegion:   target,
		TargetEndpoint: endpoint,
		Timestamp:      time.Now().UTC(),
	}

	status, _, err := c.probe(ctx, endpoint, c.config.FailoverTimeout)
	switch {
	case err != nil:
		result.TargetStatus = StatusUnreachable
		result.Error = err.Error()
		c.logger.Error().Err(err).Str("target_region", target).Msg("failover test failed")
	case status == http.StatusOK:
		result.TargetStatus = StatusHealthy
	default:
		result.TargetStatus = StatusUnhealthy
		result.Error = fmt.Sprintf("HTTP %d", status)
	}

	if result.TargetStatus == StatusHealthy {
		result.Message = fmt.Sprintf("Failover test to %s successful", target)
	} else {
		result.Message = fmt.Sprintf("Failover test to %s failed", target)
	}
	return result, nil
}

func (c *Client) endpointRegions() []string {
	regions := make([]string, 0, len(c.config.Endpoints))
	for region := range c.config.Endpoints {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

func roundMillis(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}
