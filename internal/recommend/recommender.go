// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/georec/internal/metrics"
	"github.com/tomtom215/georec/internal/recommend/algorithms"
)

// Recommend returns up to opts.Count products for userID using user-based
// collaborative filtering. Unknown users receive popular products. Any failure
// in the personalized path falls back to popularity rather than an error.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, userID string, opts RecommendOptions) ([]RecommendationItem, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requestCount.Add(1)

	opts.Count = clampCount(opts.Count, e.config.Limits.DefaultCount, e.config.Limits.MaxCount)
	f := newItemFilter(opts.Categories, opts.MinRating)

	items, err := e.personalized(ctx, snap, userID, opts, f)
	if err == nil {
		return items, nil
	}

	e.fallbackCount.Add(1)
	metrics.RecommendFallbacks.Inc()
	e.logger.Error().
		Err(err).
		Str("user_id", userID).
		Msg("personalized recommendation failed, falling back to popular items")

	var known map[int]struct{}
	if opts.ExcludeKnown {
		known = e.knownProducts(snap, userID)
	}
	return e.popularItems(snap, opts.Count, f, inSet(known)), nil
}

// personalized runs the neighbor walk. Panics are converted to errors.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) personalized(ctx context.Context, snap *Snapshot, userID string, opts RecommendOptions, f itemFilter) (items []RecommendationItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recommendation panic: %v", r)
		}
	}()

	ui, ok := snap.Matrix.UserIndex(userID)
	if !ok {
		return e.popularItems(snap, opts.Count, f, nil), nil
	}

	known := map[int]struct{}{}
	if opts.ExcludeKnown {
		known = e.knownProducts(snap, userID)
	}

	scores := e.neighborScores(snap, ui, known)
	if algorithms.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	selected := make(map[int]struct{}, opts.Count)
	items = make([]RecommendationItem, 0, opts.Count)
	for _, c := range rankCandidates(scores) {
		if len(items) >= opts.Count {
			break
		}
		if item, ok := snap.enrich(c.col, c.score, e.config.Region, f); ok {
			items = append(items, item)
			selected[c.col] = struct{}{}
		}
	}

	if len(items) < opts.Count {
		skip := func(j int) bool {
			if _, ok := selected[j]; ok {
				return true
			}
			_, ok := known[j]
			return ok
		}
		padding := e.popularItems(snap, opts.Count-len(items), f, skip)
		items = append(items, padding...)
	}
	return items, nil
}

// neighborScores accumulates similarity-weighted ratings from the most similar
// users, stopping once similarity drops below the threshold.
func (e *Engine) neighborScores(snap *Snapshot, ui int, known map[int]struct{}) map[int]float64 {
	sims := snap.userSimilarityRow(ui)
	neighbors := algorithms.TopIndices(sims, e.config.Neighborhood.Size, ui)

	scores := make(map[int]float64)
	for _, n := range neighbors {
		sim := sims[n]
		if sim < e.config.Neighborhood.SimilarityThreshold {
			break
		}
		for _, j := range snap.Matrix.ObservedRow(n) {
			if _, skip := known[j]; skip {
				continue
			}
			rating, _ := snap.Matrix.At(n, j)
			scores[j] += sim * rating
		}
	}
	return scores
}

type candidate struct {
	col   int
	score float64
}

// rankCandidates sorts by score descending, then column ascending.
func rankCandidates(scores map[int]float64) []candidate {
	out := make([]candidate, 0, len(scores))
	for col, score := range scores {
		out = append(out, candidate{col: col, score: score})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].score != out[b].score {
			return out[a].score > out[b].score
		}
		return out[a].col < out[b].col
	})
	return out
}

// knownProducts returns the columns userID has interacted with.
func (e *Engine) knownProducts(snap *Snapshot, userID string) map[int]struct{} {
	ui, ok := snap.Matrix.UserIndex(userID)
	if !ok {
		return nil
	}
	row := snap.Matrix.ObservedRow(ui)
	known := make(map[int]struct{}, len(row))
	for _, j := range row {
		known[j] = struct{}{}
	}
	return known
}

func inSet(set map[int]struct{}) func(int) bool {
	if len(set) == 0 {
		return nil
	}
	return func(j int) bool {
		_, ok := set[j]
		return ok
	}
}
