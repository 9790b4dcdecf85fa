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

// Factorization errors.
var (
	// ErrEmptyMatrix is returned when the input has no rows or no columns.
	ErrEmptyMatrix = errors.New("matrix is empty")

	// ErrInvalidRank is returned when k is outside [1, min(rows, cols)].
	ErrInvalidRank = errors.New("invalid factorization rank")

	// ErrNonFinite is returned when the input holds NaN or infinite values.
	ErrNonFinite = errors.New("matrix contains non-finite values")

	// ErrNoConvergence is returned when the SVD fails to converge.
	ErrNoConvergence = errors.New("svd did not converge")
)

// Factorization is a rank-k approximation A ≈ UserFactors · ItemFactors.
type Factorization struct {
	// Rank is the number of retained components (k).
	Rank int

	// UserFactors is rows×k and equals U_k·Σ_k.
	UserFactors *mat.Dense

	// ItemFactors is k×cols and equals V_kᵀ.
	ItemFactors *mat.Dense

	// SingularValues holds the k largest singular values in descending order.
	SingularValues []float64

	// ExplainedVarianceRatio is the share of total column variance captured by
	// each component.
	ExplainedVarianceRatio []float64
}

// TotalExplainedVariance returns the summed explained variance ratio.
func (f *Factorization) TotalExplainedVariance() float64 {
	return floats.Sum(f.ExplainedVarianceRatio)
}

// TruncatedSVD factorizes a and keeps the k leading components.
func TruncatedSVD(ctx context.Context, a mat.Matrix, k int) (*Factorization, error) {
	rows, cols := a.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyMatrix
	}
	maxRank := min(rows, cols)
	if k < 1 || k > maxRank {
		return nil, fmt.Errorf("%w: k=%d, must be in [1, %d]", ErrInvalidRank, k, maxRank)
	}
	if !isFinite(a) {
		return nil, ErrNonFinite
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrNoConvergence
	}

	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	uk := u.Slice(0, rows, 0, k)
	vk := v.Slice(0, cols, 0, k)

	userFactors := mat.NewDense(rows, k, nil)
	userFactors.Mul(uk, mat.NewDiagDense(k, append([]float64(nil), values[:k]...)))

	itemFactors := mat.DenseCopyOf(vk.T())

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	return &Factorization{
		Rank:                   k,
		UserFactors:            userFactors,
		ItemFactors:            itemFactors,
		SingularValues:         append([]float64(nil), values[:k]...),
		ExplainedVarianceRatio: explainedVarianceRatio(a, userFactors),
	}, nil
}

func isFinite(a mat.Matrix) bool {
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := a.At(i, j)
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

// explainedVarianceRatio divides the variance of each projected column by the
// summed variance of the original columns.
func explainedVarianceRatio(a mat.Matrix, projected *mat.Dense) []float64 {
	_, cols := a.Dims()
	_, k := projected.Dims()

	var total float64
	for j := 0; j < cols; j++ {
		total += variance(mat.Col(nil, j, a))
	}

	ratios := make([]float64, k)
	if total == 0 {
		return ratios
	}
	for j := 0; j < k; j++ {
		ratios[j] = variance(mat.Col(nil, j, projected)) / total
	}
	return ratios
}

// variance is the population variance of x.
func variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	mean := floats.Sum(x) / float64(len(x))
	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(x))
}
