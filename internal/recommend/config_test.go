// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty region", mutate: func(c *Config) { c.Region = "" }, wantErr: true},
		{name: "zero components", mutate: func(c *Config) { c.Model.Components = 0 }, wantErr: true},
		{name: "zero train timeout", mutate: func(c *Config) { c.Model.TrainTimeout = 0 }, wantErr: true},
		{name: "zero neighbors", mutate: func(c *Config) { c.Neighborhood.Size = 0 }, wantErr: true},
		{name: "threshold above 1", mutate: func(c *Config) { c.Neighborhood.SimilarityThreshold = 1.5 }, wantErr: true},
		{name: "max below default", mutate: func(c *Config) { c.Limits.MaxCount = 5 }, wantErr: true},
		{name: "window max below default", mutate: func(c *Config) { c.Limits.MaxWindowHours = 12 }, wantErr: true},
		{name: "zero oversample", mutate: func(c *Config) { c.Limits.Oversample = 0 }, wantErr: true},
		{name: "zero peer timeout", mutate: func(c *Config) { c.PeerTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Regions[0] = "changed"
	clone.Model.Components = 7

	if cfg.Regions[0] == "changed" {
		t.Error("Clone() shares the Regions slice")
	}
	if cfg.Model.Components == 7 {
		t.Error("Clone() shares Model")
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		count, def, max, want int
	}{
		{0, 10, 50, 10},
		{-3, 10, 50, 10},
		{5, 10, 50, 5},
		{500, 10, 50, 50},
	}
	for _, tt := range tests {
		if got := clampCount(tt.count, tt.def, tt.max); got != tt.want {
			t.Errorf("clampCount(%d, %d, %d) = %d, want %d", tt.count, tt.def, tt.max, got, tt.want)
		}
	}
}
