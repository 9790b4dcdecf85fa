// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sampleMatrix() *mat.Dense {
	return mat.NewDense(4, 3, []float64{
		5, 0, 0,
		4, 3, 0,
		0, 5, 2,
		1, 0, 4,
	})
}

func TestTruncatedSVD_Errors(t *testing.T) {
	tests := []struct {
		name    string
		a       mat.Matrix
		k       int
		wantErr error
	}{
		{"empty matrix", &mat.Dense{}, 1, ErrEmptyMatrix},
		{"zero rank", sampleMatrix(), 0, ErrInvalidRank},
		{"rank above bound", sampleMatrix(), 4, ErrInvalidRank},
		{"infinite cell", mat.NewDense(2, 2, []float64{math.Inf(1), 0, 0, 1}), 1, ErrNonFinite},
		{"nan cell", mat.NewDense(2, 2, []float64{1, 0, math.NaN(), 1}), 1, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TruncatedSVD(context.Background(), tt.a, tt.k)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TruncatedSVD() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTruncatedSVD_Dimensions(t *testing.T) {
	f, err := TruncatedSVD(context.Background(), sampleMatrix(), 2)
	if err != nil {
		t.Fatalf("TruncatedSVD() error = %v", err)
	}

	if r, c := f.UserFactors.Dims(); r != 4 || c != 2 {
		t.Errorf("UserFactors dims = %dx%d, want 4x2", r, c)
	}
	if r, c := f.ItemFactors.Dims(); r != 2 || c != 3 {
		t.Errorf("ItemFactors dims = %dx%d, want 2x3", r, c)
	}
	if f.Rank != 2 {
		t.Errorf("Rank = %d, want 2", f.Rank)
	}
	if len(f.SingularValues) != 2 || f.SingularValues[0] < f.SingularValues[1] {
		t.Errorf("SingularValues = %v, want 2 values in descending order", f.SingularValues)
	}
}

func TestTruncatedSVD_FullRankReconstructs(t *testing.T) {
	a := sampleMatrix()
	f, err := TruncatedSVD(context.Background(), a, 3)
	if err != nil {
		t.Fatalf("TruncatedSVD() error = %v", err)
	}

	var product mat.Dense
	product.Mul(f.UserFactors, f.ItemFactors)
	if !mat.EqualApprox(&product, a, 1e-9) {
		t.Errorf("UserFactors·ItemFactors = %v, want %v", mat.Formatted(&product), mat.Formatted(a))
	}
}

func TestTruncatedSVD_ExplainedVarianceMonotone(t *testing.T) {
	a := sampleMatrix()
	prev := -1.0
	for k := 1; k <= 3; k++ {
		f, err := TruncatedSVD(context.Background(), a, k)
		if err != nil {
			t.Fatalf("TruncatedSVD(k=%d) error = %v", k, err)
		}
		total := f.TotalExplainedVariance()
		if total < prev-1e-12 {
			t.Errorf("explained variance at k=%d = %v, less than k=%d value %v", k, total, k-1, prev)
		}
		if total < 0 || total > 1+1e-9 {
			t.Errorf("explained variance at k=%d = %v, want within [0, 1]", k, total)
		}
		prev = total
	}
}

func TestTruncatedSVD_Deterministic(t *testing.T) {
	a := sampleMatrix()
	f1, err := TruncatedSVD(context.Background(), a, 2)
	if err != nil {
		t.Fatalf("TruncatedSVD() error = %v", err)
	}
	f2, err := TruncatedSVD(context.Background(), a, 2)
	if err != nil {
		t.Fatalf("TruncatedSVD() error = %v", err)
	}

	if !mat.Equal(f1.UserFactors, f2.UserFactors) {
		t.Error("UserFactors differ between runs")
	}
	if !mat.Equal(f1.ItemFactors, f2.ItemFactors) {
		t.Error("ItemFactors differ between runs")
	}
}

func TestTruncatedSVD_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TruncatedSVD(ctx, sampleMatrix(), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("TruncatedSVD() error = %v, want context.Canceled", err)
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{3, 3, 3}, 0},
		{"spread", []float64{1, 3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := variance(tt.x); got != tt.want {
				t.Errorf("variance(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}
