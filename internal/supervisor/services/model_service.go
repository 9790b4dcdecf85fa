// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/georec/internal/recommend"
)

// ModelEngine is the part of the recommendation engine the model service
// drives. *recommend.Engine implements it.
type ModelEngine interface {
	Ready() bool
	LoadOrTrain(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// ModelServiceConfig holds the model lifecycle intervals.
type ModelServiceConfig struct {
	// RetryInterval is the delay between failed initial loads.
	// Default: 1m
	RetryInterval time.Duration

	// UpdateInterval is the delay between scheduled refreshes once a model
	// is active.
	// Default: 24h
	UpdateInterval time.Duration
}

// ModelService loads the first model in the background and refreshes it on
// a schedule. The HTTP server starts independently and answers 503 until
// the first load succeeds.
type ModelService struct {
	engine ModelEngine
	config ModelServiceConfig
	logger zerolog.Logger
}

// NewModelService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelService(engine ModelEngine, cfg ModelServiceConfig, logger zerolog.Logger) *ModelService {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Minute
	}
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = 24 * time.Hour
	}
	return &ModelService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "model").Logger(),
	}
}

// Serve implements suture.Service.
func (s *ModelService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("retry_interval", s.config.RetryInterval).
		Dur("update_interval", s.config.UpdateInterval).
		Msg("model service starting")

	// After a supervisor restart the engine may already hold a snapshot.
	if !s.engine.Ready() {
		if err := s.initialLoad(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(s.config.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// initialLoad retries LoadOrTrain until it succeeds or ctx is canceled.
func (s *ModelService) initialLoad(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := s.engine.LoadOrTrain(ctx)
		if err == nil {
			s.logger.Info().
				Int("attempt", attempt).
				Dur("duration", time.Since(start)).
				Msg("initial model load complete")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, recommend.ErrRefreshInProgress) && s.engine.Ready() {
			// An admin refresh won the race and published a model.
			return nil
		}

		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", s.config.RetryInterval).
			Msg("initial model load failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.RetryInterval):
		}
	}
}

func (s *ModelService) refresh(ctx context.Context) {
	s.logger.Debug().Msg("scheduled model refresh triggered")
	start := time.Now()

	err := s.engine.Refresh(ctx)
	switch {
	case err == nil:
		s.logger.Info().Dur("duration", time.Since(start)).Msg("scheduled model refresh complete")
	case errors.Is(err, recommend.ErrRefreshInProgress):
		s.logger.Info().Msg("scheduled model refresh skipped, another refresh is running")
	case ctx.Err() != nil:
		// shutting down
	default:
		s.logger.Warn().Err(err).Msg("scheduled model refresh failed, previous model kept")
	}
}

// String implements fmt.Stringer.
func (s *ModelService) String() string {
	return "model-service"
}
