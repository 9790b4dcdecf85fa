// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package logging provides centralized zerolog-based structured logging for Georec.

# Quick Start

	import "github.com/tomtom215/georec/internal/logging"

	logging.Init(logging.Config{
	    Level:   "info",
	    Format:  "json",
	    Service: "georec",
	    Region:  "us-east-1",
	})

	logging.Info().Msg("server starting")
	logging.Error().Err(err).Msg("model refresh failed")

Components receive a zerolog.Logger by value and derive their own child:

	log := logger.With().Str("component", "region-client").Logger()

# Request Context

HTTP middleware stores request and correlation IDs in the request context.
The correlation ID arrives from peer regions in the X-Correlation-ID header
and is forwarded on outgoing peer calls, so one cross-region aggregation can
be followed through every region's logs. Ctx attaches both IDs to every line:

	logging.Ctx(r.Context()).Warn().Str("region", name).Msg("peer region failed")

# slog Bridge

SlogHandler adapts zerolog to log/slog for libraries that only accept an
*slog.Logger, such as sutureslog for supervisor events.

# Conventions

Messages are short lowercase phrases; data goes in typed fields:

	logging.Info().Str("user_id", id).Int("count", n).Msg("served recommendations")  // Correct
	logging.Info().Msgf("served %d recommendations for %s", n, id)                  // Avoid

Always terminate chains with Msg or Send, otherwise nothing is written.
*/
package logging
