// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package artifact

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// bundleFilename is the single bundle file within the store directory.
const bundleFilename = "bundle.gob.gz"

// FSStore persists bundles as a single file in a directory.
// Writes go to a temp file in the same directory followed by a rename,
// so loads observe either the previous bundle or the complete new one.
type FSStore struct {
	dir string
}

// NewFSStore creates a filesystem-backed bundle store, creating the
// directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Save persists a bundle atomically.
func (s *FSStore) Save(ctx context.Context, b *recommend.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env, err := encodeBundle(b)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, bundleFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp bundle file: %w", err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(env); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write bundle file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync bundle file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close bundle file: %w", err)
	}

	if err := os.Rename(tmpName, s.path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("publish bundle file: %w", err)
	}

	return nil
}

// Load retrieves the current bundle.
func (s *FSStore) Load(ctx context.Context) (*recommend.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", recommend.ErrArtifactNotFound, s.path())
	}
	if err != nil {
		return nil, fmt.Errorf("open bundle file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: read envelope: %v", recommend.ErrArtifactCorrupt, err)
	}

	return decodeBundle(&env)
}

// Metadata returns the stored bundle's metadata without decoding the
// full payload.
func (s *FSStore) Metadata(ctx context.Context) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", recommend.ErrArtifactNotFound, s.path())
	}
	if err != nil {
		return nil, fmt.Errorf("open bundle file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: read envelope: %v", recommend.ErrArtifactCorrupt, err)
	}

	meta := env.Metadata
	return &meta, nil
}

func (s *FSStore) path() string {
	return filepath.Join(s.dir, bundleFilename)
}

var _ recommend.BundleStore = (*FSStore)(nil)
