// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"testing"
)

func TestSimilar(t *testing.T) {
	engine := setupEngine(t)

	got, err := engine.Similar(context.Background(), "X", 5)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Similar()) = %d, want 2", len(got))
	}

	byID := make(map[string]SimilarProduct, len(got))
	for _, p := range got {
		if p.ProductID == "X" {
			t.Error("Similar() returned the query product")
		}
		if p.SimilarityScore < 0 || p.SimilarityScore > 1 {
			t.Errorf("SimilarityScore(%s) = %v, want in [0, 1]", p.ProductID, p.SimilarityScore)
		}
		byID[p.ProductID] = p
	}

	y, ok := byID["Y"]
	if !ok {
		t.Fatal("Y missing from Similar(X)")
	}
	if len(y.SharedFeatures) != 1 || y.SharedFeatures[0] != "category" {
		t.Errorf("SharedFeatures(Y) = %v, want [category]", y.SharedFeatures)
	}
	if y.Category != "electronics" {
		t.Errorf("Category(Y) = %q, want electronics", y.Category)
	}

	z, ok := byID["Z"]
	if !ok {
		t.Fatal("Z missing from Similar(X)")
	}
	if len(z.SharedFeatures) != 0 {
		t.Errorf("SharedFeatures(Z) = %v, want none", z.SharedFeatures)
	}
}

func TestSimilar_UnknownProduct(t *testing.T) {
	engine := setupEngine(t)

	got, err := engine.Similar(context.Background(), "missing", 5)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Similar(unknown) = %v, want empty non-nil slice", got)
	}
}

func TestSimilar_Count(t *testing.T) {
	engine := setupEngine(t)

	got, err := engine.Similar(context.Background(), "Y", 1)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(Similar(count=1)) = %d, want 1", len(got))
	}
}
