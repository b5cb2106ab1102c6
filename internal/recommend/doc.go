// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package recommend implements the book recommendation engine.
//
// The engine is item-based k-nearest-neighbors over a ratings matrix:
// raw (book, rater, score) records are reduced to a dense book-by-rater
// pivot table, a brute-force nearest-neighbors index is fitted over the
// pivot rows, and online queries resolve a book title to its row, find
// the k closest rows, and join the results back to display metadata.
//
// # Offline / Online Split
//
// The Trainer runs the one-shot offline pipeline (pivot, fit, persist)
// and the Service answers online queries against an immutable loaded
// Bundle. The two are connected only through a BundleStore, so serving
// may continue against an older bundle while a new training run
// proceeds in another process.
//
// # Row Ordering Invariant
//
// The pivot table's row order is the single source of truth for the
// mapping between book titles and row indices. The index, the persisted
// bundle, and the service all derive their title translation from it;
// a Bundle whose parts disagree on dimensions fails validation with
// ErrDimensionMismatch rather than silently returning wrong titles.
//
// # Thread Safety
//
// A loaded Bundle is read-only; the Service performs no locking and is
// safe for concurrent use. Training mutates nothing shared.
package recommend
