// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/metrics"
)

// Trainer runs the one-shot offline pipeline: pivot the raw ratings,
// fit the nearest-neighbors index, and persist the bundle. Either the
// whole bundle becomes visible atomically or nothing is written.
type Trainer struct {
	cfg    Config
	store  BundleStore
	logger zerolog.Logger
}

// NewTrainer creates a trainer with an explicit configuration and
// artifact store.
func NewTrainer(cfg Config, store BundleStore, logger zerolog.Logger) (*Trainer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("trainer config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("trainer requires a bundle store")
	}
	return &Trainer{
		cfg:    cfg,
		store:  store,
		logger: logger.With().Str("component", "trainer").Logger(),
	}, nil
}

// Run executes one training run over the given datasets and persists
// the resulting bundle. Returns the bundle on success; on failure no
// artifacts become visible to loaders.
func (t *Trainer) Run(ctx context.Context, ratings []Rating, books []Book) (*Bundle, error) {
	start := time.Now()
	t.logger.Info().
		Int("ratings", len(ratings)).
		Int("books", len(books)).
		Msg("training run started")

	pivot, err := BuildPivot(ratings, t.cfg)
	if err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build pivot: %w", err)
	}

	t.logger.Info().
		Int("rows", len(pivot.Titles)).
		Int("columns", len(pivot.Raters)).
		Msg("pivot table built")

	index, err := FitNearestNeighbors(ctx, pivot, t.cfg)
	if err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fit index: %w", err)
	}

	trainedAt := time.Now().UTC()
	bundle := &Bundle{
		BuildID:     buildID(pivot, trainedAt),
		TrainedAt:   trainedAt,
		Pivot:       pivot,
		Index:       index,
		Books:       books,
		RatingCount: len(ratings),
	}
	if err := bundle.Validate(); err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("validate bundle: %w", err)
	}

	if err := t.store.Save(ctx, bundle); err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save bundle: %w", err)
	}

	metrics.TrainingRuns.WithLabelValues("ok").Inc()
	metrics.TrainingDuration.Observe(time.Since(start).Seconds())

	t.logger.Info().
		Str("build_id", bundle.BuildID).
		Dur("elapsed", time.Since(start)).
		Msg("training run completed")

	return bundle, nil
}

// buildID derives the bundle's build tag from the training inputs and
// completion time: a SHA-256 over the pivot contents plus timestamp.
// Two bundles from different runs therefore never share a tag.
func buildID(pivot *PivotTable, trainedAt time.Time) string {
	h := sha256.New()

	var buf [8]byte
	for _, title := range pivot.Titles {
		h.Write([]byte(title))
		h.Write([]byte{0})
	}
	for _, rater := range pivot.Raters {
		binary.LittleEndian.PutUint64(buf[:], uint64(rater))
		h.Write(buf[:])
	}
	for _, row := range pivot.Rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(trainedAt.UnixNano()))
	h.Write(buf[:])

	return hex.EncodeToString(h.Sum(nil))
}
