// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import "errors"

// ErrInsufficientData indicates that filtering left too few books to
// build a queryable index. Fatal to the training run; no artifacts are
// written.
var ErrInsufficientData = errors.New("insufficient training data after filtering")

// ErrArtifactNotFound indicates that no trained bundle exists yet (cold
// start). Recoverable: the caller should run training first.
var ErrArtifactNotFound = errors.New("no trained artifact bundle found")

// ErrArtifactCorrupt indicates a bundle that exists but failed checksum
// or build-tag validation. Treated as fatal, never silently coerced.
var ErrArtifactCorrupt = errors.New("artifact bundle failed integrity validation")

// ErrUnknownBook indicates a query title with no exact match in the
// catalog. Recoverable: the caller should offer valid titles.
var ErrUnknownBook = errors.New("book title not in catalog")

// ErrDimensionMismatch indicates an internal invariant violation, such
// as a query vector whose width differs from the trained matrix or a
// bundle assembled from mismatched training runs.
var ErrDimensionMismatch = errors.New("dimension mismatch between query and trained matrix")

// ErrMissingMetadata indicates a recommended title with no metadata row.
// The Service substitutes NoImageURL instead of failing the request;
// the sentinel error is surfaced only by strict lookups.
var ErrMissingMetadata = errors.New("no metadata for recommended title")
