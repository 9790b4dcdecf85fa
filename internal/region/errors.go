// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package region

import "errors"

var (
	// ErrUnknownRegion is returned for regions outside the allowed list.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrNoEndpoint is returned when an allowed region has no endpoint configured.
	ErrNoEndpoint = errors.New("no endpoint configured for region")

	// ErrSameRegion is returned when failing over to the local region.
	ErrSameRegion = errors.New("cannot failover to the same region")

	// ErrCircuitOpen is returned when a peer's breaker rejects the request.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrPeerStatus is returned when a peer answers with a non-200 status.
	ErrPeerStatus = errors.New("unexpected peer status")
)
