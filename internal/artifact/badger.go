// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package artifact

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// Key under which the current bundle is stored.
const bundleKey = "bundle:latest"

// BadgerStore persists bundles in a BadgerDB database. The bundle is a
// single value written in one transaction, so loads never observe a
// partial write.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a Badger-backed bundle store over an open
// database. The caller owns the database lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens a Badger database at the given path and wraps
// it in a store. Close releases the database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Save persists a bundle in a single transaction.
func (s *BadgerStore) Save(ctx context.Context, b *recommend.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env, err := encodeBundle(b)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(bundleKey), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}

	return nil
}

// Load retrieves the current bundle.
func (s *BadgerStore) Load(ctx context.Context) (*recommend.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var env envelope
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(bundleKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return recommend.ErrArtifactNotFound
		}
		if err != nil {
			return fmt.Errorf("get bundle: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&env); err != nil {
				return fmt.Errorf("%w: read envelope: %v", recommend.ErrArtifactCorrupt, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return decodeBundle(&env)
}

var _ recommend.BundleStore = (*BadgerStore)(nil)
