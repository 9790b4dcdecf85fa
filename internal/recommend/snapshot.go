// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"time"

	"github.com/tomtom215/georec/internal/recommend/algorithms"
	"gonum.org/v1/gonum/mat"
)

// Snapshot is the immutable bundle every inference call reads from.
// The engine replaces it wholesale on refresh and never mutates it after
// publication.
type Snapshot struct {
	Model    *Model
	Matrix   *InteractionMatrix
	Features ProductFeatures

	// Loaded is true when the model was adopted from persisted artifacts
	// rather than trained during this load.
	Loaded bool

	// Version increases by one with every published snapshot.
	Version int64

	// PublishedAt is when the engine made this snapshot active.
	PublishedAt time.Time

	// popularity holds per-product observed weight sums.
	popularity    []float64
	popularOrder  []int
	maxPopularity float64
	totalWeight   float64
}

func newSnapshot(model *Model, matrix *InteractionMatrix, features ProductFeatures, loaded bool) *Snapshot {
	if features == nil {
		features = ProductFeatures{}
	}
	sums := matrix.ColumnSums()
	s := &Snapshot{
		Model:        model,
		Matrix:       matrix,
		Features:     features,
		Loaded:       loaded,
		popularity:   sums,
		popularOrder: algorithms.ArgsortDesc(sums),
	}
	for _, v := range sums {
		s.totalWeight += v
	}
	if len(s.popularOrder) > 0 {
		s.maxPopularity = sums[s.popularOrder[0]]
	}
	return s
}

// popularityScore normalizes a product's weight sum by the maximum sum.
func (s *Snapshot) popularityScore(j int) float64 {
	if s.maxPopularity <= 0 {
		return 0
	}
	return algorithms.Clamp(s.popularity[j]/s.maxPopularity, 0, 1)
}

// userSimilarityRow returns a copy of row i of the user similarity matrix.
func (s *Snapshot) userSimilarityRow(i int) []float64 {
	return mat.Row(nil, i, s.Model.UserSimilarity)
}

// itemSimilarityRow returns a copy of row j of the item similarity matrix.
func (s *Snapshot) itemSimilarityRow(j int) []float64 {
	return mat.Row(nil, j, s.Model.ItemSimilarity)
}

// product returns the known attributes of column j.
func (s *Snapshot) product(j int) (Product, bool) {
	p, ok := s.Features[s.Matrix.ProductID(j)]
	return p, ok
}
