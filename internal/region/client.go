// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package region

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/logging"
	"github.com/tomtom215/georec/internal/metrics"
	"github.com/tomtom215/georec/internal/recommend"
)

// maxErrorBody caps how much of a failed response body is kept in errors.
const maxErrorBody = 512

// peerRequest is the body sent to a peer's user recommendation endpoint.
type peerRequest struct {
	Count            int  `json:"count"`
	ExcludePurchased bool `json:"exclude_purchased"`
}

// peerResponse is the subset of the peer's response the client reads.
type peerResponse struct {
	Recommendations []recommend.RecommendationItem `json:"recommendations"`
}

// Client calls peer regions. It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	breakers   map[string]*peerBreaker
	logger     zerolog.Logger
}

// NewClient creates a client for the configured endpoints.
//
//nolint:gocritic // hugeParam: config and logger passed by value
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid region config: %w", err)
	}

	endpoints := make(map[string]string, len(cfg.Endpoints))
	for region, endpoint := range cfg.Endpoints {
		endpoints[region] = strings.TrimRight(endpoint, "/")
	}
	cfg.Endpoints = endpoints
	cfg.Allowed = append([]string(nil), cfg.Allowed...)

	logger = logger.With().Str("component", "region_client").Logger()
	breakers := make(map[string]*peerBreaker, len(endpoints))
	for region := range endpoints {
		if region != cfg.Local {
			breakers[region] = newBreaker(region, cfg.Breaker, logger)
		}
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.ClientTimeout},
		breakers:   breakers,
		logger:     logger,
	}, nil
}

// Local returns the local region name.
func (c *Client) Local() string {
	return c.config.Local
}

// Allowed returns a copy of the allowed region list.
func (c *Client) Allowed() []string {
	return append([]string(nil), c.config.Allowed...)
}

// FailoverEnabled reports whether failover is enabled.
func (c *Client) FailoverEnabled() bool {
	return c.config.FailoverEnabled
}

// Endpoint returns the base URL configured for region.
func (c *Client) Endpoint(region string) (string, bool) {
	endpoint, ok := c.config.Endpoints[region]
	return endpoint, ok
}

// Endpoints returns a copy of the endpoint map.
func (c *Client) Endpoints() map[string]string {
	out := make(map[string]string, len(c.config.Endpoints))
	for k, v := range c.config.Endpoints {
		out[k] = v
	}
	return out
}

// FailoverRegions returns every allowed region except the local one, in
// configured order.
func (c *Client) FailoverRegions() []string {
	out := make([]string, 0, len(c.config.Allowed))
	for _, r := range c.config.Allowed {
		if r != c.config.Local {
			out = append(out, r)
		}
	}
	return out
}

// BreakerState returns the breaker state name for a peer region, or "" when
// the region has no breaker.
func (c *Client) BreakerState(region string) string {
	cb, ok := c.breakers[region]
	if !ok {
		return ""
	}
	return stateToString(cb.State())
}

// Recommend fetches up to count recommendations for userID from a peer region.
// Known products are excluded, matching the local aggregation path.
func (c *Client) Recommend(ctx context.Context, region, userID string, count int) ([]recommend.RecommendationItem, error) {
	endpoint, err := c.peerEndpoint(region)
	if err != nil {
		return nil, err
	}
	cb := c.breakers[region]

	start := time.Now()
	items, err := execute(cb, func() ([]recommend.RecommendationItem, error) {
		return c.fetchRecommendations(ctx, endpoint, userID, count)
	})
	metrics.RecordRegionRequest(region, time.Since(start), err)

	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("peer_region", region).
			Str("user_id", userID).
			Msg("peer recommendation request failed")
		return nil, fmt.Errorf("region %s: %w", region, err)
	}
	return items, nil
}

func (c *Client) peerEndpoint(region string) (string, error) {
	if !c.config.IsAllowed(region) {
		return "", fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	endpoint, ok := c.config.Endpoints[region]
	if !ok || endpoint == "" {
		return "", fmt.Errorf("%w: %s", ErrNoEndpoint, region)
	}
	if _, ok := c.breakers[region]; !ok {
		return "", fmt.Errorf("%w: %s is the local region", ErrUnknownRegion, region)
	}
	return endpoint, nil
}

func (c *Client) fetchRecommendations(ctx context.Context, endpoint, userID string, count int) ([]recommend.RecommendationItem, error) {
	body, err := json.Marshal(peerRequest{Count: count, ExcludePurchased: true})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqURL := endpoint + "/api/v1/recommendations/user/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(logging.CorrelationIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d: %s", ErrPeerStatus, resp.StatusCode, readBodyForError(resp.Body))
	}

	var decoded peerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Recommendations == nil {
		decoded.Recommendations = []recommend.RecommendationItem{}
	}
	return decoded.Recommendations, nil
}

func readBodyForError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
