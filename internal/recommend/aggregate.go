// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/georec/internal/recommend/algorithms"
)

// regionOutcome is the result of querying one region.
type regionOutcome struct {
	region string
	items  []RecommendationItem
	err    error
}

// Aggregate queries the local engine and every listed peer region
// concurrently and merges the results. An empty regions list queries all
// configured regions. Failed regions are logged, reported in FailedRegions
// and left out of the merge. ErrAllRegionsFailed is returned only when no
// region succeeded.
func (e *Engine) Aggregate(ctx context.Context, userID string, regions []string, count int, method AggregationMethod) (*AggregateResult, error) {
	count = clampCount(count, e.config.Limits.DefaultCount, e.config.Limits.MaxCount)
	method = ParseAggregationMethod(string(method))
	regions = e.resolveRegions(regions)

	outcomes := e.queryRegions(ctx, userID, regions, count)

	result := &AggregateResult{
		RegionResults:     make(map[string][]RecommendationItem, len(outcomes)),
		RegionsQueried:    make([]string, 0, len(outcomes)),
		AggregationMethod: method,
	}

	ordered := make([][]RecommendationItem, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			if result.FailedRegions == nil {
				result.FailedRegions = make(map[string]string)
			}
			result.FailedRegions[o.region] = o.err.Error()
			e.logger.Warn().
				Err(o.err).
				Str("peer_region", o.region).
				Str("user_id", userID).
				Msg("region query failed")
			continue
		}
		result.RegionResults[o.region] = o.items
		result.RegionsQueried = append(result.RegionsQueried, o.region)
		ordered = append(ordered, o.items)
	}

	if len(result.RegionsQueried) == 0 {
		result.AggregatedRecommendations = []RecommendationItem{}
		return result, fmt.Errorf("%w: %d regions queried", ErrAllRegionsFailed, len(regions))
	}

	result.AggregatedRecommendations = MergeResults(ordered, count, method)
	return result, nil
}

// resolveRegions applies the default region list and drops duplicates.
func (e *Engine) resolveRegions(regions []string) []string {
	if len(regions) == 0 {
		regions = e.config.Regions
	}
	if len(regions) == 0 {
		regions = []string{e.config.Region}
	}

	seen := make(map[string]struct{}, len(regions))
	out := make([]string, 0, len(regions))
	for _, r := range regions {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// queryRegions fans out one goroutine per region and waits for all of them.
// Outcomes keep the order of regions.
func (e *Engine) queryRegions(ctx context.Context, userID string, regions []string, count int) []regionOutcome {
	outcomes := make([]regionOutcome, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			items, err := e.queryRegion(ctx, userID, region, count)
			outcomes[i] = regionOutcome{region: region, items: items, err: err}
		}(i, region)
	}
	wg.Wait()

	return outcomes
}

func (e *Engine) queryRegion(ctx context.Context, userID, region string, count int) (items []RecommendationItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("region %s panic: %v", region, r)
		}
	}()

	if region == e.config.Region {
		return e.Recommend(ctx, userID, RecommendOptions{Count: count, ExcludeKnown: true})
	}
	if e.peers == nil {
		return nil, errors.New("no peer client configured")
	}

	peerCtx, cancel := context.WithTimeout(ctx, e.config.PeerTimeout)
	defer cancel()

	items, err = e.peers.Recommend(peerCtx, region, userID, count)
	if err != nil {
		return nil, err
	}
	return clampScores(items), nil
}

// clampScores copies peer items with every score forced into [0, 1].
// NaN scores become 0.
func clampScores(items []RecommendationItem) []RecommendationItem {
	out := make([]RecommendationItem, len(items))
	for i, it := range items {
		if math.IsNaN(it.Score) {
			it.Score = 0
		}
		it.Score = algorithms.Clamp(it.Score, 0, 1)
		out[i] = it
	}
	return out
}

// MergeResults combines per-region results, given in processing order.
//
// Merge keeps the first occurrence of each product. HighestScore keeps the
// highest-scoring occurrence. Both sort by score descending, stable with
// respect to first appearance, and truncate to count.
func MergeResults(results [][]RecommendationItem, count int, method AggregationMethod) []RecommendationItem {
	var merged []RecommendationItem
	index := make(map[string]int)

	for _, items := range results {
		for _, item := range items {
			pos, seen := index[item.ProductID]
			if !seen {
				index[item.ProductID] = len(merged)
				merged = append(merged, item)
				continue
			}
			if method == AggregationHighestScore && item.Score > merged[pos].Score {
				merged[pos] = item
			}
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Score > merged[b].Score
	})

	if count >= 0 && len(merged) > count {
		merged = merged[:count]
	}
	if merged == nil {
		merged = []RecommendationItem{}
	}
	return merged
}
