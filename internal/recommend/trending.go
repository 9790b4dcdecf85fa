// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"math"
)

// Trending ranks products by total interaction weight as a stand-in for recent
// activity. Interactions carry no timestamps, so windowHours is validated and
// echoed but does not change the ranking.
//
// GrowthRate is the product's weight divided by the weight it would have under
// an even split across all products; values above 1 mean above-average
// interest. It is deterministic and flagged as synthetic.
func (e *Engine) Trending(ctx context.Context, count int, category string, windowHours int) ([]TrendingProduct, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count = clampCount(count, e.config.Limits.DefaultCount, e.config.Limits.MaxTrending)
	windowHours = clampCount(windowHours, e.config.Limits.DefaultWindowHours, e.config.Limits.MaxWindowHours)

	var evenShare float64
	if n := snap.Matrix.ProductCount(); n > 0 {
		evenShare = snap.totalWeight / float64(n)
	}

	window := count * e.config.Limits.Oversample
	out := make([]TrendingProduct, 0, count)
	for rank, j := range snap.popularOrder {
		if rank >= window || len(out) >= count {
			break
		}
		p, _ := snap.product(j)
		if category != "" && p.Category != category {
			continue
		}

		sum := snap.popularity[j]
		growth := 0.0
		if evenShare > 0 {
			growth = math.Max(sum/evenShare, 0)
		}
		out = append(out, TrendingProduct{
			ProductID:           snap.Matrix.ProductID(j),
			ProductName:         p.Name,
			Category:            p.Category,
			TrendScore:          snap.popularityScore(j),
			InteractionCount:    int(math.Max(sum, 0)),
			GrowthRate:          growth,
			GrowthRateSynthetic: true,
			WindowHours:         windowHours,
			Region:              e.config.Region,
		})
	}
	return out, nil
}
