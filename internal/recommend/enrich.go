// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import "github.com/tomtom215/georec/internal/recommend/algorithms"

// itemFilter applies the category and rating filters shared by the
// recommender and the popularity ranker. Unknown attributes pass.
type itemFilter struct {
	categories map[string]struct{}
	minRating  *float64
}

func newItemFilter(categories []string, minRating *float64) itemFilter {
	f := itemFilter{minRating: minRating}
	if len(categories) > 0 {
		f.categories = make(map[string]struct{}, len(categories))
		for _, c := range categories {
			f.categories[c] = struct{}{}
		}
	}
	return f
}

func (f itemFilter) keep(p Product) bool {
	if f.categories != nil && p.Category != "" {
		if _, ok := f.categories[p.Category]; !ok {
			return false
		}
	}
	if f.minRating != nil && p.Rating != nil && *p.Rating < *f.minRating {
		return false
	}
	return true
}

// enrich builds a RecommendationItem for column j, or reports false when the
// filter rejects it.
func (s *Snapshot) enrich(j int, score float64, region string, f itemFilter) (RecommendationItem, bool) {
	p, _ := s.product(j)
	if !f.keep(p) {
		return RecommendationItem{}, false
	}
	return RecommendationItem{
		ProductID:   s.Matrix.ProductID(j),
		ProductName: p.Name,
		Category:    p.Category,
		Score:       algorithms.Clamp(score, 0, 1),
		Price:       p.Price,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Region:      region,
	}, true
}
