// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package services provides suture.Service wrappers for Georec components.

# Available Services

HTTPServerService:
  - Runs *http.Server.ListenAndServe in a goroutine
  - Shuts down gracefully on context cancellation, then runs OnShutdown hooks

ModelService:
  - Calls Engine.LoadOrTrain in the background, retrying every RetryInterval
    until a model is published
  - Calls Engine.Refresh every UpdateInterval afterwards; failures keep the
    previous model active

CacheJanitorService:
  - Calls CleanupExpired on the response cache every interval

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

ModelService never returns an error for a failed load or refresh; it logs
and waits for the next attempt, so only cancellation ends it.
*/
package services
