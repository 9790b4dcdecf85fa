// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/objectstore"
)

// Loader reads the interaction matrix and product features from the region's
// processed bucket.
type Loader struct {
	objects objectstore.Store
	bucket  string
	logger  zerolog.Logger
}

// NewLoader creates a loader for the given region.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(objects objectstore.Store, region string, logger zerolog.Logger) *Loader {
	return &Loader{
		objects: objects,
		bucket:  objectstore.ProcessedBucket(region),
		logger:  logger.With().Str("component", "loader").Logger(),
	}
}

// LoadInteractionMatrix fetches and parses the interaction matrix.
// Any failure wraps ErrDataUnavailable.
func (l *Loader) LoadInteractionMatrix(ctx context.Context) (*InteractionMatrix, error) {
	data, err := l.objects.Get(ctx, l.bucket, objectstore.InteractionMatrixObject)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrDataUnavailable, l.bucket, objectstore.InteractionMatrixObject, err)
	}

	m, err := ParseInteractionMatrix(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	l.logger.Info().
		Int("users", m.UserCount()).
		Int("products", m.ProductCount()).
		Int("interactions", m.ObservedCount()).
		Msg("loaded interaction matrix")
	return m, nil
}

// LoadProductFeatures fetches and parses the product feature table.
// A missing table yields empty features and no error.
func (l *Loader) LoadProductFeatures(ctx context.Context) (ProductFeatures, error) {
	data, err := l.objects.Get(ctx, l.bucket, objectstore.ProductFeaturesObject)
	if errors.Is(err, objectstore.ErrObjectNotFound) {
		l.logger.Warn().Str("bucket", l.bucket).Msg("product features not found, enrichment disabled")
		return ProductFeatures{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", l.bucket, objectstore.ProductFeaturesObject, err)
	}

	features, skipped, err := ParseProductFeatures(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		l.logger.Warn().Int("skipped", skipped).Msg("skipped malformed product feature rows")
	}
	l.logger.Info().Int("products", len(features)).Msg("loaded product features")
	return features, nil
}

// ParseInteractionMatrix parses a wide CSV: the first column holds user IDs and
// every other header cell is a product ID. Empty cells are missing interactions.
func ParseInteractionMatrix(r io.Reader) (*InteractionMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("interaction matrix is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("interaction matrix header has no product columns")
	}
	productIDs := trimAll(header[1:])

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	userIDs := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		userIDs = append(userIDs, strings.TrimSpace(rec[0]))
	}

	m, err := NewInteractionMatrix(userIDs, productIDs)
	if err != nil {
		return nil, err
	}

	row := 0
	for line, rec := range records {
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", line+2, len(rec), len(header))
		}
		for j, cell := range rec[1:] {
			value, ok, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line+2, productIDs[j], err)
			}
			if ok {
				m.Set(row, j, value)
			}
		}
		row++
	}
	return m, nil
}

// parseCell returns ok=false for empty and NaN cells. Infinite weights are rejected.
func parseCell(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, fmt.Errorf("non-finite weight %q", cell)
	}
	return v, true, nil
}

// ParseProductFeatures parses the product feature table. Columns are located by
// header name; product_id is required. product_category_name supplies both the
// display name and the category unless product_name is present. Rows with an
// empty ID or unparseable numbers are skipped and counted.
func ParseProductFeatures(r io.Reader) (ProductFeatures, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ProductFeatures{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read product features header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range trimAll(header) {
		cols[strings.ToLower(name)] = i
	}
	idCol, ok := cols["product_id"]
	if !ok {
		return nil, 0, fmt.Errorf("product features missing product_id column")
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	features := ProductFeatures{}
	skipped := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read product features: %w", err)
		}
		if idCol >= len(rec) || strings.TrimSpace(rec[idCol]) == "" {
			skipped++
			continue
		}

		p := Product{
			ID:          strings.TrimSpace(rec[idCol]),
			Category:    field(rec, "product_category_name"),
			ImageURL:    field(rec, "image_url"),
			Description: field(rec, "description"),
		}
		p.Name = p.Category
		if name := field(rec, "product_name"); name != "" {
			p.Name = name
		}

		price, priceOK, perr := parseCell(field(rec, "price"))
		rating, ratingOK, rerr := parseCell(field(rec, "rating"))
		if perr != nil || rerr != nil {
			skipped++
			continue
		}
		if priceOK {
			p.Price = &price
		}
		if ratingOK {
			p.Rating = &rating
		}

		if _, dup := features[p.ID]; !dup {
			features[p.ID] = p
		}
	}
	return features, skipped, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
