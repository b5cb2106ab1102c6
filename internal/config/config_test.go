// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearBookwiseEnv unsets every BOOKWISE_ variable so tests control the
// environment layer completely. t.Setenv registers the restore.
func clearBookwiseEnv(t *testing.T) {
	t.Helper()

	for _, kv := range os.Environ() {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup (t.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	clearBookwiseEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.BooksPath != "data/books.csv" {
		t.Errorf("BooksPath = %q, want default", cfg.Dataset.BooksPath)
	}
	if cfg.Artifacts.Backend != BackendFS {
		t.Errorf("Backend = %q, want %q", cfg.Artifacts.Backend, BackendFS)
	}
	if cfg.Engine.Neighbors != 6 {
		t.Errorf("Engine.Neighbors = %d, want 6", cfg.Engine.Neighbors)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearBookwiseEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	content := `dataset:
  books_path: /srv/books.csv
engine:
  neighbors: 11
artifacts:
  backend: badger
  path: /srv/artifacts
`
	if err := os.WriteFile(filepath.Join(dir, "bookwise.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.BooksPath != "/srv/books.csv" {
		t.Errorf("BooksPath = %q, want file value", cfg.Dataset.BooksPath)
	}
	if cfg.Engine.Neighbors != 11 {
		t.Errorf("Engine.Neighbors = %d, want 11", cfg.Engine.Neighbors)
	}
	if cfg.Artifacts.Backend != BackendBadger {
		t.Errorf("Backend = %q, want badger", cfg.Artifacts.Backend)
	}
	// Unset keys keep their defaults.
	if cfg.Dataset.RatingsPath != "data/ratings.csv" {
		t.Errorf("RatingsPath = %q, want default", cfg.Dataset.RatingsPath)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearBookwiseEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	content := `engine:
  neighbors: 11
`
	if err := os.WriteFile(filepath.Join(dir, "bookwise.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("BOOKWISE_ENGINE_NEIGHBORS", "3")
	t.Setenv("BOOKWISE_ARTIFACTS_PATH", "/tmp/bw-artifacts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.Neighbors != 3 {
		t.Errorf("Engine.Neighbors = %d, want env override 3", cfg.Engine.Neighbors)
	}
	if cfg.Artifacts.Path != "/tmp/bw-artifacts" {
		t.Errorf("Artifacts.Path = %q, want env override", cfg.Artifacts.Path)
	}
}

func TestLoad_ConfigPathEnvVar(t *testing.T) {
	clearBookwiseEnv(t)
	chdir(t, t.TempDir())

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("engine:\n  neighbors: 9\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, custom)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Neighbors != 9 {
		t.Errorf("Engine.Neighbors = %d, want 9 from custom file", cfg.Engine.Neighbors)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad backend", key: "BOOKWISE_ARTIFACTS_BACKEND", value: "s3"},
		{name: "bad metric", key: "BOOKWISE_ENGINE_METRIC", value: "manhattan"},
		{name: "zero neighbors", key: "BOOKWISE_ENGINE_NEIGHBORS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearBookwiseEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded, want validation error", tt.key, tt.value)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "BOOKWISE_ENGINE_NEIGHBORS", want: "engine.neighbors"},
		{in: "BOOKWISE_DATASET_BOOKS_PATH", want: "dataset.books_path"},
		{in: "BOOKWISE_ARTIFACTS_BACKEND", want: "artifacts.backend"},
		{in: "BOOKWISE_ENGINE_MIN_RATINGS_PER_BOOK", want: "engine.min_ratings_per_book"},
	}

	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg = defaultConfig()
	cfg.Dataset.BooksPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with empty books path succeeded, want error")
	}

	cfg = defaultConfig()
	cfg.Artifacts.Backend = "memory"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with unknown backend succeeded, want error")
	}
}
