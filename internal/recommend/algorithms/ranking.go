// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package algorithms

import (
	"context"
	"sort"
)

// ArgsortDesc returns the indices of values ordered by value descending.
// Equal values keep ascending index order.
func ArgsortDesc(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})
	return idx
}

// TopIndices returns up to n indices ordered by value descending, skipping
// exclude. Pass a negative exclude to keep every index.
func TopIndices(values []float64, n, exclude int) []int {
	if n <= 0 {
		return nil
	}
	order := ArgsortDesc(values)
	out := make([]int, 0, min(n, len(order)))
	for _, i := range order {
		if i == exclude {
			continue
		}
		out = append(out, i)
		if len(out) == n {
			break
		}
	}
	return out
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
