// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"

	"github.com/tomtom215/georec/internal/recommend/algorithms"
)

// Similar returns the products closest to productID in item-factor space.
// An unknown product yields an empty result, not an error.
func (e *Engine) Similar(ctx context.Context, productID string, count int) ([]SimilarProduct, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count = clampCount(count, e.config.Limits.DefaultCount, e.config.Limits.MaxSimilar)

	j, ok := snap.Matrix.ProductIndex(productID)
	if !ok {
		return []SimilarProduct{}, nil
	}

	ref, _ := snap.product(j)
	sims := snap.itemSimilarityRow(j)
	out := make([]SimilarProduct, 0, count)
	for _, i := range algorithms.TopIndices(sims, count, j) {
		p, _ := snap.product(i)
		out = append(out, SimilarProduct{
			ProductID:       snap.Matrix.ProductID(i),
			ProductName:     p.Name,
			SimilarityScore: algorithms.Clamp(sims[i], 0, 1),
			Category:        p.Category,
			SharedFeatures:  sharedFeatures(ref, p),
		})
	}
	return out, nil
}

// sharedFeatures lists the attributes two products have in common.
func sharedFeatures(a, b Product) []string {
	var shared []string
	if a.Category != "" && a.Category == b.Category {
		shared = append(shared, "category")
	}
	return shared
}
