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

func TestCosineRows(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		0, 0,
	})

	sim, err := CosineRows(context.Background(), m)
	if err != nil {
		t.Fatalf("CosineRows() error = %v", err)
	}

	tests := []struct {
		i, j int
		want float64
	}{
		{0, 0, 1},
		{0, 1, 0},
		{0, 2, 1 / math.Sqrt2},
		{1, 2, 1 / math.Sqrt2},
		{3, 3, 1},
		{3, 0, 0},
		{3, 2, 0},
	}
	for _, tt := range tests {
		if got := sim.At(tt.i, tt.j); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("sim(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}

	if err := ValidateSimilarity(sim, 4); err != nil {
		t.Errorf("ValidateSimilarity() error = %v", err)
	}
}

func TestCosineColumns_OpposedVectors(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		1, -2,
		2, -4,
	})

	sim, err := CosineColumns(context.Background(), m)
	if err != nil {
		t.Fatalf("CosineColumns() error = %v", err)
	}
	if got := sim.At(0, 1); math.Abs(got+1) > 1e-12 {
		t.Errorf("sim(0,1) = %v, want -1", got)
	}
}

func TestCosineRows_FromFactorization(t *testing.T) {
	f, err := TruncatedSVD(context.Background(), sampleMatrix(), 2)
	if err != nil {
		t.Fatalf("TruncatedSVD() error = %v", err)
	}

	userSim, err := CosineRows(context.Background(), f.UserFactors)
	if err != nil {
		t.Fatalf("CosineRows() error = %v", err)
	}
	itemSim, err := CosineColumns(context.Background(), f.ItemFactors)
	if err != nil {
		t.Fatalf("CosineColumns() error = %v", err)
	}

	if err := ValidateSimilarity(userSim, 4); err != nil {
		t.Errorf("user similarity invalid: %v", err)
	}
	if err := ValidateSimilarity(itemSim, 3); err != nil {
		t.Errorf("item similarity invalid: %v", err)
	}
}

func TestCosineRows_Empty(t *testing.T) {
	if _, err := CosineRows(context.Background(), &mat.Dense{}); !errors.Is(err, ErrEmptyMatrix) {
		t.Errorf("CosineRows() error = %v, want ErrEmptyMatrix", err)
	}
}

func TestValidateSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		m       mat.Matrix
		n       int
		wantErr bool
	}{
		{
			name: "valid",
			m:    mat.NewDense(2, 2, []float64{1, 0.5, 0.5, 1}),
			n:    2,
		},
		{
			name:    "wrong dims",
			m:       mat.NewDense(2, 2, []float64{1, 0.5, 0.5, 1}),
			n:       3,
			wantErr: true,
		},
		{
			name:    "bad diagonal",
			m:       mat.NewDense(2, 2, []float64{0.9, 0.5, 0.5, 1}),
			n:       2,
			wantErr: true,
		},
		{
			name:    "asymmetric",
			m:       mat.NewDense(2, 2, []float64{1, 0.5, 0.4, 1}),
			n:       2,
			wantErr: true,
		},
		{
			name:    "out of range",
			m:       mat.NewDense(2, 2, []float64{1, 1.5, 1.5, 1}),
			n:       2,
			wantErr: true,
		},
		{
			name:    "nan",
			m:       mat.NewDense(2, 2, []float64{1, math.NaN(), math.NaN(), 1}),
			n:       2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSimilarity(tt.m, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSimilarity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSimilarity) {
				t.Errorf("ValidateSimilarity() error = %v, want ErrInvalidSimilarity", err)
			}
		})
	}
}
