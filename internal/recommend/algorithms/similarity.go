// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SimilarityTolerance is the allowed deviation for symmetry and diagonal checks.
const SimilarityTolerance = 1e-9

// ErrInvalidSimilarity is returned when a matrix violates similarity invariants.
var ErrInvalidSimilarity = errors.New("invalid similarity matrix")

// CosineRows returns the pairwise cosine similarity of the rows of m.
// The diagonal is 1.0 and off-diagonal values are clamped into [-1, 1].
// A zero row has similarity 0 with every other row.
func CosineRows(ctx context.Context, m mat.Matrix) (*mat.SymDense, error) {
	n, c := m.Dims()
	if n == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}

	rows := make([][]float64, n)
	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, m)
		norms[i] = floats.Norm(rows[i], 2)
	}

	sim := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if i%64 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		sim.SetSym(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			sim.SetSym(i, j, cosine(rows[i], rows[j], norms[i], norms[j]))
		}
	}
	return sim, nil
}

// CosineColumns returns the pairwise cosine similarity of the columns of m.
func CosineColumns(ctx context.Context, m mat.Matrix) (*mat.SymDense, error) {
	return CosineRows(ctx, m.T())
}

// cosine computes a·b / (|a||b|) from precomputed norms.
func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return Clamp(floats.Dot(a, b)/(normA*normB), -1, 1)
}

// ValidateSimilarity checks that m is an n×n similarity matrix: symmetric,
// unit diagonal, finite and within [-1, 1].
func ValidateSimilarity(m mat.Matrix, n int) error {
	r, c := m.Dims()
	if r != n || c != n {
		return fmt.Errorf("%w: dims %dx%d, want %dx%d", ErrInvalidSimilarity, r, c, n, n)
	}
	for i := 0; i < n; i++ {
		if d := m.At(i, i); math.IsNaN(d) || math.Abs(d-1) > SimilarityTolerance {
			return fmt.Errorf("%w: diagonal[%d] = %v", ErrInvalidSimilarity, i, m.At(i, i))
		}
		for j := i + 1; j < n; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite value at (%d,%d)", ErrInvalidSimilarity, i, j)
			}
			if v < -1-SimilarityTolerance || v > 1+SimilarityTolerance {
				return fmt.Errorf("%w: value %v at (%d,%d) out of range", ErrInvalidSimilarity, v, i, j)
			}
			if math.Abs(v-m.At(j, i)) > SimilarityTolerance {
				return fmt.Errorf("%w: asymmetric at (%d,%d)", ErrInvalidSimilarity, i, j)
			}
		}
	}
	return nil
}
