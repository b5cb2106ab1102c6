// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Neighbors != 6 {
		t.Errorf("Neighbors = %d, want 6", cfg.Neighbors)
	}
	if cfg.Metric != MetricCosine {
		t.Errorf("Metric = %q, want %q", cfg.Metric, MetricCosine)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}, wantErr: false},
		{name: "euclidean valid", mutate: func(c *Config) { c.Metric = MetricEuclidean }, wantErr: false},
		{name: "zero neighbors", mutate: func(c *Config) { c.Neighbors = 0 }, wantErr: true},
		{name: "unknown metric", mutate: func(c *Config) { c.Metric = "manhattan" }, wantErr: true},
		{name: "zero book threshold", mutate: func(c *Config) { c.MinRatingsPerBook = 0 }, wantErr: true},
		{name: "zero rater threshold", mutate: func(c *Config) { c.MinRatingsPerRater = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.NumWorkers = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	var zero Config
	filled := zero.withDefaults()
	if err := filled.Validate(); err != nil {
		t.Fatalf("withDefaults() produced invalid config: %v", err)
	}
	if filled != DefaultConfig() {
		t.Errorf("withDefaults() on zero config = %+v, want defaults", filled)
	}

	// Explicit values survive.
	custom := Config{Neighbors: 3, Metric: MetricEuclidean}
	filled = custom.withDefaults()
	if filled.Neighbors != 3 || filled.Metric != MetricEuclidean {
		t.Errorf("withDefaults() overwrote explicit values: %+v", filled)
	}
	if filled.MinRatingsPerBook != DefaultConfig().MinRatingsPerBook {
		t.Errorf("withDefaults() left zero threshold: %+v", filled)
	}
}
