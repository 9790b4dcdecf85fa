// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package algorithms implements the numerical building blocks of the
// recommendation engine.
//
// This package has no knowledge of users, products or regions. It operates on
// gonum matrices indexed by row and column position, and the recommend package
// maps identifiers onto those positions.
//
// # Operators
//
// Rank-k factorization:
//   - TruncatedSVD: thin SVD of the zero-filled interaction matrix truncated to
//     k components. User factors are U_k·Σ_k, item factors are V_kᵀ.
//
// Pairwise similarity:
//   - CosineRows: cosine similarity between all row pairs (user factors)
//   - CosineColumns: cosine similarity between all column pairs (item factors)
//
// Ranking helpers:
//   - ArgsortDesc: stable descending ordering of a score vector
//   - TopIndices: descending ordering with one index excluded, truncated to n
//
// # Determinism
//
// gonum's SVD is LAPACK-based and contains no randomized step, so the same
// input always produces the same factors. Singular vectors are unique only up
// to sign; cosine similarity is invariant to a sign flip of a whole component,
// so similarity matrices are unaffected.
//
// # Usage Example
//
//	f, err := algorithms.TruncatedSVD(ctx, dense, 50)
//	if err != nil {
//	    return err
//	}
//	userSim, err := algorithms.CosineRows(ctx, f.UserFactors)
//	itemSim, err := algorithms.CosineColumns(ctx, f.ItemFactors)
package algorithms
