// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package models defines the request and response bodies of the Georec HTTP API.

Recommendation responses are returned as top-level JSON objects because the
same shapes travel between regions: a peer region's
POST /api/v1/recommendations/user/{user_id} response is decoded by
region.Client. Errors use the APIResponse envelope with status "error":

	{
	  "status": "error",
	  "error": {"code": "ENGINE_NOT_READY", "message": "recommendation models not loaded"},
	  "metadata": {"timestamp": "2026-01-15T12:00:00Z"}
	}

Request structs carry validate tags checked by internal/validation. Bounds
in tags are the API limits; the engine additionally clamps counts to its
configured maxima.
*/
package models
