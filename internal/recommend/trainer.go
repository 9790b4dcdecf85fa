// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/recommend/algorithms"
	"gonum.org/v1/gonum/mat"
)

// Model is the trained state derived from an interaction matrix.
type Model struct {
	Factors        *algorithms.Factorization
	UserSimilarity *mat.SymDense
	ItemSimilarity *mat.SymDense
	TrainedAt      time.Time
	Duration       time.Duration
	Seed           int64
}

// Trainer fits the factor model and derives both similarity matrices.
type Trainer struct {
	components int
	seed       int64
	logger     zerolog.Logger
}

// NewTrainer creates a trainer for rank-k factorization.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(components int, seed int64, logger zerolog.Logger) *Trainer {
	return &Trainer{
		components: components,
		seed:       seed,
		logger:     logger.With().Str("component", "trainer").Logger(),
	}
}

// Train factorizes the zero-filled matrix and computes cosine similarities.
// All failures wrap ErrTrainingFailed.
func (t *Trainer) Train(ctx context.Context, m *InteractionMatrix) (*Model, error) {
	if m == nil || m.UserCount() == 0 || m.ProductCount() == 0 {
		return nil, fmt.Errorf("%w: interaction matrix is empty", ErrTrainingFailed)
	}
	if t.components > min(m.UserCount(), m.ProductCount()) {
		return nil, fmt.Errorf("%w: rank %d exceeds min(users=%d, products=%d)",
			ErrTrainingFailed, t.components, m.UserCount(), m.ProductCount())
	}
	if !m.finite() {
		return nil, fmt.Errorf("%w: interaction matrix contains non-finite weights", ErrTrainingFailed)
	}

	start := time.Now()
	t.logger.Info().
		Int("users", m.UserCount()).
		Int("products", m.ProductCount()).
		Int("components", t.components).
		Msg("training factor model")

	factors, err := algorithms.TruncatedSVD(ctx, m.Dense(), t.components)
	if err != nil {
		return nil, fmt.Errorf("%w: factorize: %v", ErrTrainingFailed, err)
	}

	userSim, err := algorithms.CosineRows(ctx, factors.UserFactors)
	if err != nil {
		return nil, fmt.Errorf("%w: user similarity: %v", ErrTrainingFailed, err)
	}

	itemSim, err := algorithms.CosineColumns(ctx, factors.ItemFactors)
	if err != nil {
		return nil, fmt.Errorf("%w: item similarity: %v", ErrTrainingFailed, err)
	}

	model := &Model{
		Factors:        factors,
		UserSimilarity: userSim,
		ItemSimilarity: itemSim,
		TrainedAt:      time.Now().UTC(),
		Duration:       time.Since(start),
		Seed:           t.seed,
	}

	t.logger.Info().
		Dur("duration", model.Duration).
		Float64("explained_variance", factors.TotalExplainedVariance()).
		Msg("factor model trained")
	return model, nil
}
