// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package config loads and validates application configuration.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, then an optional YAML config
// file, then built-in defaults.
package config

import (
	"fmt"

	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
	"github.com/tomtom215/bookwise/internal/validation"
)

// Artifact store backends.
const (
	// BackendFS stores the bundle as a single atomically renamed file.
	BackendFS = "fs"

	// BackendBadger stores the bundle in a BadgerDB database.
	BackendBadger = "badger"
)

// Config is the full application configuration.
type Config struct {
	// Dataset locates the input CSV files.
	Dataset DatasetConfig `koanf:"dataset" json:"dataset"`

	// Artifacts configures bundle persistence.
	Artifacts ArtifactsConfig `koanf:"artifacts" json:"artifacts"`

	// Engine holds the recommendation engine parameters.
	Engine recommend.Config `koanf:"engine" json:"engine"`

	// Logging configures the global logger.
	Logging logging.Config `koanf:"logging" json:"logging"`
}

// DatasetConfig locates the training inputs. Schema resolution (which
// columns carry title, rater and score) is owned by the dataset loader;
// only the file locations are configuration.
type DatasetConfig struct {
	// BooksPath is the book catalog CSV.
	BooksPath string `koanf:"books_path" json:"books_path" validate:"required"`

	// RatingsPath is the rating records CSV.
	RatingsPath string `koanf:"ratings_path" json:"ratings_path" validate:"required"`
}

// ArtifactsConfig configures where trained bundles are persisted.
type ArtifactsConfig struct {
	// Backend selects the store implementation: "fs" or "badger".
	Backend string `koanf:"backend" json:"backend" validate:"oneof=fs badger"`

	// Path is the store directory (fs) or database directory (badger).
	Path string `koanf:"path" json:"path" validate:"required"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			BooksPath:   "data/books.csv",
			RatingsPath: "data/ratings.csv",
		},
		Artifacts: ArtifactsConfig{
			Backend: BackendFS,
			Path:    "data/artifacts",
		},
		Engine:  recommend.DefaultConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine configuration invalid: %w", err)
	}
	return nil
}
