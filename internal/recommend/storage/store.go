// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/georec/internal/objectstore"
	"github.com/tomtom215/georec/internal/recommend/algorithms"
	"gonum.org/v1/gonum/mat"
)

// ErrArtifactNotFound is returned when an artifact has not been persisted.
var ErrArtifactNotFound = errors.New("model artifact not found")

// ArtifactStore reads and writes model artifacts in one models bucket.
type ArtifactStore struct {
	objects objectstore.Store
	bucket  string
}

// NewArtifactStore creates an artifact store over the given bucket.
func NewArtifactStore(objects objectstore.Store, bucket string) *ArtifactStore {
	return &ArtifactStore{objects: objects, bucket: bucket}
}

// Bucket returns the models bucket name.
func (s *ArtifactStore) Bucket() string {
	return s.bucket
}

// Exists reports whether the models bucket exists.
func (s *ArtifactStore) Exists(ctx context.Context) (bool, error) {
	return s.objects.BucketExists(ctx, s.bucket)
}

// List returns the objects currently stored in the models bucket.
func (s *ArtifactStore) List(ctx context.Context) ([]objectstore.ObjectInfo, error) {
	return s.objects.List(ctx, s.bucket)
}

// SaveFactorModel persists a factorization.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *ArtifactStore) SaveFactorModel(ctx context.Context, f *algorithms.Factorization, meta Metadata) error {
	data, err := EncodeFactorModel(FactorModelStateFrom(f), meta)
	if err != nil {
		return err
	}
	return s.put(ctx, KindFactorModel, data)
}

// LoadFactorModel loads and validates the persisted factorization.
func (s *ArtifactStore) LoadFactorModel(ctx context.Context) (*algorithms.Factorization, *Metadata, error) {
	data, err := s.get(ctx, KindFactorModel)
	if err != nil {
		return nil, nil, err
	}
	state, meta, err := DecodeFactorModel(data)
	if err != nil {
		return nil, nil, err
	}
	return state.Factorization(), meta, nil
}

// SaveSimilarity persists a similarity matrix under the given kind.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *ArtifactStore) SaveSimilarity(ctx context.Context, kind Kind, sim *mat.SymDense, meta Metadata) error {
	data, err := EncodeSimilarity(kind, SimilarityStateFrom(sim), meta)
	if err != nil {
		return err
	}
	return s.put(ctx, kind, data)
}

// LoadSimilarity loads and validates a persisted similarity matrix.
func (s *ArtifactStore) LoadSimilarity(ctx context.Context, kind Kind) (*mat.SymDense, *Metadata, error) {
	data, err := s.get(ctx, kind)
	if err != nil {
		return nil, nil, err
	}
	state, meta, err := DecodeSimilarity(kind, data)
	if err != nil {
		return nil, nil, err
	}
	return state.SymDense(), meta, nil
}

func (s *ArtifactStore) put(ctx context.Context, kind Kind, data []byte) error {
	if err := s.objects.Put(ctx, s.bucket, string(kind), data); err != nil {
		return fmt.Errorf("put %s: %w", kind, err)
	}
	return nil
}

func (s *ArtifactStore) get(ctx context.Context, kind Kind) ([]byte, error) {
	data, err := s.objects.Get(ctx, s.bucket, string(kind))
	if errors.Is(err, objectstore.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrArtifactNotFound, s.bucket, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return data, nil
}

// FactorModelStateFrom flattens a factorization for encoding.
func FactorModelStateFrom(f *algorithms.Factorization) *FactorModelState {
	users, _ := f.UserFactors.Dims()
	_, items := f.ItemFactors.Dims()
	return &FactorModelState{
		Rank:                   f.Rank,
		UserCount:              users,
		ItemCount:              items,
		UserFactors:            flatten(f.UserFactors),
		ItemFactors:            flatten(f.ItemFactors),
		SingularValues:         append([]float64(nil), f.SingularValues...),
		ExplainedVarianceRatio: append([]float64(nil), f.ExplainedVarianceRatio...),
	}
}

// Factorization rebuilds the gonum representation. The state must be valid.
func (s *FactorModelState) Factorization() *algorithms.Factorization {
	return &algorithms.Factorization{
		Rank:                   s.Rank,
		UserFactors:            mat.NewDense(s.UserCount, s.Rank, append([]float64(nil), s.UserFactors...)),
		ItemFactors:            mat.NewDense(s.Rank, s.ItemCount, append([]float64(nil), s.ItemFactors...)),
		SingularValues:         append([]float64(nil), s.SingularValues...),
		ExplainedVarianceRatio: append([]float64(nil), s.ExplainedVarianceRatio...),
	}
}

// SimilarityStateFrom flattens a similarity matrix for encoding.
func SimilarityStateFrom(sim *mat.SymDense) *SimilarityState {
	n, _ := sim.Dims()
	return &SimilarityState{N: n, Data: flatten(sim)}
}

// SymDense rebuilds the gonum representation from the upper triangle.
// The state must be valid.
func (s *SimilarityState) SymDense() *mat.SymDense {
	sym := mat.NewSymDense(s.N, nil)
	for i := 0; i < s.N; i++ {
		for j := i; j < s.N; j++ {
			sym.SetSym(i, j, s.Data[i*s.N+j])
		}
	}
	return sym
}

func flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
