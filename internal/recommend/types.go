// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"time"
)

// NoImageURL is the well-defined sentinel returned for a recommended
// title that has no poster reference in the metadata table. Callers
// render a "no image" placeholder for it.
const NoImageURL = ""

// Rating is a single raw rating record. Consumed once by the pivot
// builder and not retained afterward.
type Rating struct {
	// BookTitle identifies the rated book. Title is the item identity
	// throughout the engine.
	BookTitle string `json:"book_title"`

	// RaterID is an opaque rater identifier; the engine uses it only as
	// a column axis.
	RaterID int `json:"rater_id"`

	// Score is the rating value.
	Score float64 `json:"score"`
}

// Book is a catalog entry with display metadata. The aggregate rating
// fields are for display only and never feed the similarity index.
type Book struct {
	// Title is the unique book identity after filtering.
	Title string `json:"title"`

	// Author is the display author name.
	Author string `json:"author,omitempty"`

	// ImageURL is the poster reference (URL or path).
	ImageURL string `json:"image_url,omitempty"`

	// AvgRating is the mean rating across all raters.
	AvgRating float64 `json:"avg_rating,omitempty"`

	// RatingCount is the number of ratings received.
	RatingCount int `json:"rating_count,omitempty"`
}

// Recommendation is one entry of an ordered recommendation list.
type Recommendation struct {
	// Title is the recommended book title.
	Title string `json:"title"`

	// ImageURL is the poster reference, or NoImageURL if the title has
	// no metadata match.
	ImageURL string `json:"image_url"`

	// Distance is the index distance from the query row. Lower is more
	// similar; the query book itself appears at distance 0.
	Distance float64 `json:"distance"`
}

// Bundle is the persisted output of one training run: the pivot table,
// the fitted index and the book metadata table, tagged with a build
// identifier so mismatched artifacts cannot be combined silently.
type Bundle struct {
	// BuildID is a content hash of the training inputs plus timestamp.
	// All three artifacts in a bundle share it by construction.
	BuildID string `json:"build_id"`

	// TrainedAt is when the training run completed.
	TrainedAt time.Time `json:"trained_at"`

	// Pivot is the book-by-rater rating matrix with canonical row order.
	Pivot *PivotTable `json:"-"`

	// Index is the fitted nearest-neighbors structure.
	Index *NearestNeighbors `json:"-"`

	// Books is the metadata table, joined by title at query time.
	Books []Book `json:"-"`

	// RatingCount is the number of raw ratings the run consumed.
	RatingCount int `json:"rating_count"`
}

// Validate checks the cross-artifact invariants of a bundle: a build
// tag is present and the pivot, index and metadata originate from the
// same training run (matching dimensions).
func (b *Bundle) Validate() error {
	if b == nil || b.Pivot == nil || b.Index == nil {
		return ErrArtifactCorrupt
	}
	if b.BuildID == "" {
		return ErrArtifactCorrupt
	}
	if len(b.Index.Matrix) != len(b.Pivot.Titles) {
		return ErrDimensionMismatch
	}
	if b.Index.Columns() != len(b.Pivot.Raters) {
		return ErrDimensionMismatch
	}
	return nil
}

// BundleStore persists and retrieves artifact bundles.
//
// Implementations must guarantee that Load never observes a partially
// written bundle. Concurrent Save calls from two training runs are
// unordered; the store promises only that a full bundle is written
// before it becomes visible to Load.
type BundleStore interface {
	// Save persists a bundle atomically.
	Save(ctx context.Context, b *Bundle) error

	// Load retrieves the latest bundle. Returns ErrArtifactNotFound on
	// cold start and ErrArtifactCorrupt on integrity failure.
	Load(ctx context.Context) (*Bundle, error)
}
