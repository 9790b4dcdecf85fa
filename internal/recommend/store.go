// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/recommend/storage"
)

// errArtifactsMissing reports that the models bucket has not been created.
var errArtifactsMissing = errors.New("models bucket does not exist")

// ModelStore implements load-or-train: it adopts persisted artifacts when all
// three are present and consistent with the current data, and otherwise
// trains and persists a new model.
type ModelStore struct {
	loader     *Loader
	trainer    *Trainer
	artifacts  *storage.ArtifactStore
	components int
	logger     zerolog.Logger
}

// NewModelStore wires a loader, trainer and artifact store together.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelStore(loader *Loader, trainer *Trainer, artifacts *storage.ArtifactStore, logger zerolog.Logger) *ModelStore {
	return &ModelStore{
		loader:     loader,
		trainer:    trainer,
		artifacts:  artifacts,
		components: trainer.components,
		logger:     logger.With().Str("component", "model_store").Logger(),
	}
}

// LoadOrTrain builds a snapshot. The interaction matrix is always read fresh.
// When forceTrain is set the persisted artifacts are ignored.
func (s *ModelStore) LoadOrTrain(ctx context.Context, forceTrain bool) (*Snapshot, error) {
	matrix, err := s.loader.LoadInteractionMatrix(ctx)
	if err != nil {
		return nil, err
	}

	fingerprint := matrix.Fingerprint()

	features, err := s.loader.LoadProductFeatures(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("product features unavailable, continuing without enrichment")
		features = ProductFeatures{}
	}

	if !forceTrain {
		model, err := s.loadArtifacts(ctx, matrix, fingerprint)
		if err == nil {
			s.logger.Info().
				Str("bucket", s.artifacts.Bucket()).
				Time("trained_at", model.TrainedAt).
				Msg("loaded persisted model artifacts")
			return newSnapshot(model, matrix, features, true), nil
		}
		s.logger.Info().Err(err).Msg("persisted artifacts unusable, training new model")
	}

	model, err := s.trainer.Train(ctx, matrix)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, model, fingerprint); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	return newSnapshot(model, matrix, features, false), nil
}

// loadArtifacts reads all three artifacts and checks them against the matrix.
func (s *ModelStore) loadArtifacts(ctx context.Context, matrix *InteractionMatrix, fingerprint string) (*Model, error) {
	exists, err := s.artifacts.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errArtifactsMissing
	}

	factors, meta, err := s.artifacts.LoadFactorModel(ctx)
	if err != nil {
		return nil, err
	}
	userSim, userMeta, err := s.artifacts.LoadSimilarity(ctx, storage.KindUserSimilarity)
	if err != nil {
		return nil, err
	}
	itemSim, itemMeta, err := s.artifacts.LoadSimilarity(ctx, storage.KindItemSimilarity)
	if err != nil {
		return nil, err
	}

	for _, m := range []*storage.Metadata{meta, userMeta, itemMeta} {
		if m.DataFingerprint != fingerprint {
			return nil, fmt.Errorf("%w: %s was trained on different user/product ordering", storage.ErrInvalidArtifact, m.Kind)
		}
	}

	users, products := matrix.UserCount(), matrix.ProductCount()
	factorUsers, _ := factors.UserFactors.Dims()
	_, factorItems := factors.ItemFactors.Dims()
	userSimN, _ := userSim.Dims()
	itemSimN, _ := itemSim.Dims()

	switch {
	case factors.Rank != s.components:
		return nil, fmt.Errorf("%w: rank %d, configured %d", storage.ErrInvalidArtifact, factors.Rank, s.components)
	case factorUsers != users || userSimN != users:
		return nil, fmt.Errorf("%w: artifacts cover %d/%d users, matrix has %d", storage.ErrInvalidArtifact, factorUsers, userSimN, users)
	case factorItems != products || itemSimN != products:
		return nil, fmt.Errorf("%w: artifacts cover %d/%d products, matrix has %d", storage.ErrInvalidArtifact, factorItems, itemSimN, products)
	}

	return &Model{
		Factors:        factors,
		UserSimilarity: userSim,
		ItemSimilarity: itemSim,
		TrainedAt:      meta.TrainedAt,
		Seed:           meta.Seed,
	}, nil
}

// persist writes all three artifacts.
func (s *ModelStore) persist(ctx context.Context, model *Model, fingerprint string) error {
	meta := storage.Metadata{
		Seed:               model.Seed,
		TrainedAt:          model.TrainedAt,
		TrainingDurationMS: model.Duration.Milliseconds(),
		DataFingerprint:    fingerprint,
	}

	if err := s.artifacts.SaveFactorModel(ctx, model.Factors, meta); err != nil {
		return fmt.Errorf("save factor model: %w", err)
	}
	if err := s.artifacts.SaveSimilarity(ctx, storage.KindUserSimilarity, model.UserSimilarity, meta); err != nil {
		return fmt.Errorf("save user similarities: %w", err)
	}
	if err := s.artifacts.SaveSimilarity(ctx, storage.KindItemSimilarity, model.ItemSimilarity, meta); err != nil {
		return fmt.Errorf("save item similarities: %w", err)
	}

	s.logger.Info().Str("bucket", s.artifacts.Bucket()).Msg("persisted model artifacts")
	return nil
}
