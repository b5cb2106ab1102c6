// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/cache"
	"github.com/tomtom215/bookwise/internal/metrics"
)

// queryCacheTTL bounds how long a memoized query result is kept. The
// bundle is immutable per service, so the TTL only limits memory.
const queryCacheTTL = 15 * time.Minute

// Service answers online recommendation queries against an immutable
// artifact bundle. It is stateless per call and safe for concurrent
// use: the bundle is read-only for the lifetime of the service.
type Service struct {
	cfg     Config
	pivot   *PivotTable
	index   *NearestNeighbors
	byTitle map[string]*Book
	titles  []string
	results *cache.Cache[[]Recommendation]
	logger  zerolog.Logger
}

// NewService builds a service over a loaded bundle.
// The bundle is validated before use so that artifacts from different
// training runs cannot be combined silently.
func NewService(bundle *Bundle, cfg Config, logger zerolog.Logger) (*Service, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("service config: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}

	// Keyed metadata lookup, first exact title match wins. Duplicate
	// titles in the metadata table are a known ambiguity of the input
	// data; the policy here matches the source's first-row join.
	byTitle := make(map[string]*Book, len(bundle.Books))
	for i := range bundle.Books {
		b := &bundle.Books[i]
		if _, ok := byTitle[b.Title]; !ok {
			byTitle[b.Title] = b
		}
	}

	titles := make([]string, len(bundle.Pivot.Titles))
	copy(titles, bundle.Pivot.Titles)

	return &Service{
		cfg:     cfg,
		pivot:   bundle.Pivot,
		index:   bundle.Index,
		byTitle: byTitle,
		titles:  titles,
		results: cache.New[[]Recommendation](queryCacheTTL),
		logger:  logger.With().Str("component", "recommend").Str("build_id", bundle.BuildID).Logger(),
	}, nil
}

// Recommend returns the cfg.Neighbors books most similar to the given
// title, in ascending distance order. The query book itself is the
// first result at distance 0.
//
// Title resolution is an exact string match; ErrUnknownBook is returned
// otherwise. A recommended title with no metadata row gets NoImageURL
// instead of failing the request.
func (s *Service) Recommend(ctx context.Context, title string) ([]Recommendation, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	row, ok := s.pivot.RowIndex(title)
	if !ok {
		metrics.RecommendRequests.WithLabelValues("unknown_book").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBook, title)
	}

	if cached, ok := s.results.Get(title); ok {
		metrics.RecommendCacheHits.Inc()
		metrics.RecommendRequests.WithLabelValues("ok").Inc()
		return append([]Recommendation(nil), cached...), nil
	}

	distances, indices, err := s.index.Query(s.pivot.Row(row), s.cfg.Neighbors)
	if err != nil {
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("query index for %q: %w", title, err)
	}

	recs := make([]Recommendation, len(indices))
	for i, idx := range indices {
		t := s.pivot.Titles[idx]
		url, err := s.PosterURL(t)
		if err != nil {
			// Substitute the sentinel; a missing poster never fails the
			// whole request.
			metrics.MissingPosters.Inc()
			url = NoImageURL
		}
		recs[i] = Recommendation{
			Title:    t,
			ImageURL: url,
			Distance: distances[i],
		}
	}

	s.results.Set(title, append([]Recommendation(nil), recs...))

	metrics.RecommendRequests.WithLabelValues("ok").Inc()
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug().
		Str("title", title).
		Int("neighbors", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation served")

	return recs, nil
}

// PosterURL returns the poster reference for a title via keyed lookup,
// or ErrMissingMetadata if the metadata table has no row for it.
func (s *Service) PosterURL(title string) (string, error) {
	b, ok := s.byTitle[title]
	if !ok {
		return NoImageURL, fmt.Errorf("%w: %q", ErrMissingMetadata, title)
	}
	return b.ImageURL, nil
}

// Titles returns the catalog of valid query titles in pivot row order,
// for selection and autocomplete surfaces.
func (s *Service) Titles() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}
