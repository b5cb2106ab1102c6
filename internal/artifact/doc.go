// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package artifact persists trained recommendation bundles.
//
// A bundle is serialized with gob, gzip-compressed and wrapped in an
// envelope carrying a SHA-256 checksum and the bundle's build tag.
// Load verifies both before returning, so a pivot table from one
// training run can never be paired with an index from another.
//
// # Backends
//
// Two implementations of recommend.BundleStore are provided:
//
//   - FSStore writes a single bundle file to a temp path in the target
//     directory and renames it into place, so a concurrent load sees
//     either the old bundle or the new one, never a partial write.
//   - BadgerStore keeps the bundle under a single key in a Badger
//     database; the transactional write gives the same all-or-nothing
//     visibility.
//
// Concurrent saves from two training runs are unordered; the store
// guarantees only full-bundle visibility.
package artifact
