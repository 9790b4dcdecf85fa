// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InteractionMatrix holds user×product interaction weights.
//
// Row and column order is authoritative: factor and similarity matrices use the
// same indexing. A cell is either observed (any value, including zero) or
// missing. Set must only be called while building; a published matrix is
// read-only.
type InteractionMatrix struct {
	userIDs      []string
	productIDs   []string
	userIndex    map[string]int
	productIndex map[string]int
	values       []float64
	observed     []bool
}

// NewInteractionMatrix creates an empty matrix with the given row and column keys.
func NewInteractionMatrix(userIDs, productIDs []string) (*InteractionMatrix, error) {
	userIndex, err := buildIndex(userIDs, "user")
	if err != nil {
		return nil, err
	}
	productIndex, err := buildIndex(productIDs, "product")
	if err != nil {
		return nil, err
	}

	n := len(userIDs) * len(productIDs)
	return &InteractionMatrix{
		userIDs:      append([]string(nil), userIDs...),
		productIDs:   append([]string(nil), productIDs...),
		userIndex:    userIndex,
		productIndex: productIndex,
		values:       make([]float64, n),
		observed:     make([]bool, n),
	}, nil
}

func buildIndex(ids []string, kind string) (map[string]int, error) {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("empty %s id at position %d", kind, i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate %s id %q", kind, id)
		}
		index[id] = i
	}
	return index, nil
}

// Set records an observed interaction.
func (m *InteractionMatrix) Set(user, product int, value float64) {
	k := user*len(m.productIDs) + product
	m.values[k] = value
	m.observed[k] = true
}

// At returns the cell value and whether it was observed.
func (m *InteractionMatrix) At(user, product int) (float64, bool) {
	k := user*len(m.productIDs) + product
	return m.values[k], m.observed[k]
}

// UserCount returns the number of rows.
func (m *InteractionMatrix) UserCount() int { return len(m.userIDs) }

// ProductCount returns the number of columns.
func (m *InteractionMatrix) ProductCount() int { return len(m.productIDs) }

// UserID returns the user at row i.
func (m *InteractionMatrix) UserID(i int) string { return m.userIDs[i] }

// ProductID returns the product at column j.
func (m *InteractionMatrix) ProductID(j int) string { return m.productIDs[j] }

// UserIndex returns the row of userID.
func (m *InteractionMatrix) UserIndex(userID string) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// ProductIndex returns the column of productID.
func (m *InteractionMatrix) ProductIndex(productID string) (int, bool) {
	j, ok := m.productIndex[productID]
	return j, ok
}

// ObservedCount returns the number of observed cells.
func (m *InteractionMatrix) ObservedCount() int {
	n := 0
	for _, ok := range m.observed {
		if ok {
			n++
		}
	}
	return n
}

// Density is the observed share of all cells.
func (m *InteractionMatrix) Density() float64 {
	if len(m.observed) == 0 {
		return 0
	}
	return float64(m.ObservedCount()) / float64(len(m.observed))
}

// ObservedRow returns the column indices of the observed cells in row i.
func (m *InteractionMatrix) ObservedRow(i int) []int {
	cols := len(m.productIDs)
	var out []int
	for j := 0; j < cols; j++ {
		if m.observed[i*cols+j] {
			out = append(out, j)
		}
	}
	return out
}

// ColumnSums returns, for each product, the sum of observed weights.
func (m *InteractionMatrix) ColumnSums() []float64 {
	cols := len(m.productIDs)
	sums := make([]float64, cols)
	for k, ok := range m.observed {
		if ok {
			sums[k%cols] += m.values[k]
		}
	}
	return sums
}

// Dense returns the zero-filled dense matrix.
func (m *InteractionMatrix) Dense() *mat.Dense {
	return mat.NewDense(len(m.userIDs), len(m.productIDs), append([]float64(nil), m.values...))
}

// Fingerprint is a SHA-256 digest of the ordered user and product IDs.
// Matrices with the same keys in a different order have different fingerprints.
func (m *InteractionMatrix) Fingerprint() string {
	h := sha256.New()
	for _, id := range m.userIDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, id := range m.productIDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// finite reports whether every observed weight is a finite number.
func (m *InteractionMatrix) finite() bool {
	for idx, v := range m.values {
		if m.observed[idx] && (math.IsInf(v, 0) || math.IsNaN(v)) {
			return false
		}
	}
	return true
}
