// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
// It is supplied at construction and never modified afterwards.
type Config struct {
	// Region is the name of the local region, e.g. "us-east-1".
	Region string `json:"region"`

	// Regions lists every region known to the deployment, local included.
	// Aggregate calls with no explicit region list query all of them.
	Regions []string `json:"regions"`

	// Model contains factorization parameters.
	Model ModelConfig `json:"model"`

	// Neighborhood contains user-based CF parameters.
	Neighborhood NeighborhoodConfig `json:"neighborhood"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// PeerTimeout bounds each remote region request during aggregation.
	// Default: 5s.
	PeerTimeout time.Duration `json:"peer_timeout"`
}

// ModelConfig contains parameters for the rank-k factorization.
type ModelConfig struct {
	// Components is the factorization rank k.
	// Default: 50.
	Components int `json:"components"`

	// Seed is recorded with every trained model for reproducibility.
	// Default: 42.
	Seed int64 `json:"seed"`

	// TrainTimeout bounds a single load-or-train run.
	// Default: 30m.
	TrainTimeout time.Duration `json:"train_timeout"`
}

// NeighborhoodConfig contains parameters for neighbor selection.
type NeighborhoodConfig struct {
	// Size is the number of most similar users considered.
	// Default: 20.
	Size int `json:"size"`

	// SimilarityThreshold stops the neighbor walk once similarity falls below it.
	// Default: 0.1.
	SimilarityThreshold float64 `json:"similarity_threshold"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultCount is used when a request does not specify a count.
	// Default: 10.
	DefaultCount int `json:"default_count"`

	// MaxCount caps recommendation and aggregate requests.
	// Default: 50.
	MaxCount int `json:"max_count"`

	// MaxSimilar caps similar-product requests.
	// Default: 50.
	MaxSimilar int `json:"max_similar"`

	// MaxTrending caps trending requests.
	// Default: 100.
	MaxTrending int `json:"max_trending"`

	// DefaultWindowHours is the trending window used when none is given.
	// Default: 24.
	DefaultWindowHours int `json:"default_window_hours"`

	// MaxWindowHours caps the trending window.
	// Default: 168.
	MaxWindowHours int `json:"max_window_hours"`

	// Oversample is the candidate multiplier applied before filtering in the
	// popularity and trending rankers.
	// Default: 2.
	Oversample int `json:"oversample"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Region:  "us-east-1",
		Regions: []string{"us-east-1", "us-west-1", "eu-west-1", "ap-south-1"},
		Model: ModelConfig{
			Components:   50,
			Seed:         42,
			TrainTimeout: 30 * time.Minute,
		},
		Neighborhood: NeighborhoodConfig{
			Size:                20,
			SimilarityThreshold: 0.1,
		},
		Limits: LimitsConfig{
			DefaultCount:       10,
			MaxCount:           50,
			MaxSimilar:         50,
			MaxTrending:        100,
			DefaultWindowHours: 24,
			MaxWindowHours:     168,
			Oversample:         2,
		},
		PeerTimeout: 5 * time.Second,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Model.Components < 1 {
		return fmt.Errorf("model.components must be positive, got %d", c.Model.Components)
	}
	if c.Model.TrainTimeout <= 0 {
		return fmt.Errorf("model.train_timeout must be positive, got %v", c.Model.TrainTimeout)
	}
	if c.Neighborhood.Size < 1 {
		return fmt.Errorf("neighborhood.size must be positive, got %d", c.Neighborhood.Size)
	}
	if c.Neighborhood.SimilarityThreshold < -1 || c.Neighborhood.SimilarityThreshold > 1 {
		return fmt.Errorf("neighborhood.similarity_threshold must be in [-1, 1], got %f", c.Neighborhood.SimilarityThreshold)
	}
	if c.Limits.DefaultCount < 1 {
		return fmt.Errorf("limits.default_count must be positive, got %d", c.Limits.DefaultCount)
	}
	if c.Limits.MaxCount < c.Limits.DefaultCount {
		return fmt.Errorf("limits.max_count must be >= limits.default_count, got %d < %d", c.Limits.MaxCount, c.Limits.DefaultCount)
	}
	if c.Limits.MaxSimilar < 1 || c.Limits.MaxTrending < 1 {
		return fmt.Errorf("limits.max_similar and limits.max_trending must be positive")
	}
	if c.Limits.DefaultWindowHours < 1 || c.Limits.MaxWindowHours < c.Limits.DefaultWindowHours {
		return fmt.Errorf("limits window hours invalid: default %d, max %d", c.Limits.DefaultWindowHours, c.Limits.MaxWindowHours)
	}
	if c.Limits.Oversample < 1 {
		return fmt.Errorf("limits.oversample must be positive, got %d", c.Limits.Oversample)
	}
	if c.PeerTimeout <= 0 {
		return fmt.Errorf("peer_timeout must be positive, got %v", c.PeerTimeout)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Regions = append([]string(nil), c.Regions...)
	return &clone
}

// clampCount applies the default and caps count at maxCount.
func clampCount(count, defaultCount, maxCount int) int {
	if count <= 0 {
		return defaultCount
	}
	if count > maxCount {
		return maxCount
	}
	return count
}
