// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateEndpoint checks a region base URL. The region client appends
// /api/v1/... paths to it, so only scheme and host (plus an optional
// trailing slash) are accepted.
func validateEndpoint(region, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("REGION_ENDPOINTS[%s]: %w", region, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("REGION_ENDPOINTS[%s] scheme must be http or https, got %q", region, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("REGION_ENDPOINTS[%s] host is required", region)
	case strings.Trim(u.Path, "/") != "":
		return fmt.Errorf("REGION_ENDPOINTS[%s] must be a base URL, remove path %q", region, u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("REGION_ENDPOINTS[%s] must not carry a query or fragment", region)
	case u.User != nil:
		return fmt.Errorf("REGION_ENDPOINTS[%s] must not embed credentials", region)
	}
	return nil
}
