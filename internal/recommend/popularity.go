// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import "context"

// Popular returns globally popular products. Scores are weight sums divided by
// the largest sum, so the top product scores 1.0.
func (e *Engine) Popular(ctx context.Context, count int, categories []string, minRating *float64) ([]RecommendationItem, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count = clampCount(count, e.config.Limits.DefaultCount, e.config.Limits.MaxCount)
	return e.popularItems(snap, count, newItemFilter(categories, minRating), nil), nil
}

// popularItems walks products in popularity order. Up to count×oversample
// candidates are examined; skipped products do not count towards that window.
func (e *Engine) popularItems(snap *Snapshot, count int, f itemFilter, skip func(j int) bool) []RecommendationItem {
	window := count * e.config.Limits.Oversample
	items := make([]RecommendationItem, 0, count)

	examined := 0
	for _, j := range snap.popularOrder {
		if len(items) >= count || examined >= window {
			break
		}
		if skip != nil && skip(j) {
			continue
		}
		examined++

		if item, ok := snap.enrich(j, snap.popularityScore(j), e.config.Region, f); ok {
			items = append(items, item)
		}
	}
	return items
}
