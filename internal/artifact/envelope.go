// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package artifact

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// Metadata describes a stored bundle.
type Metadata struct {
	// BuildID is the bundle's build tag, duplicated outside the payload
	// so Load can cross-check it after decoding.
	BuildID string `json:"build_id"`

	// TrainedAt is when the bundle's training run completed.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the bundle was persisted.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`

	// BookCount is the number of pivot rows in the bundle.
	BookCount int `json:"book_count"`

	// RaterCount is the number of pivot columns in the bundle.
	RaterCount int `json:"rater_count"`
}

// envelope is the serialized form shared by all backends.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(envelope{})
	gob.Register(Metadata{})
}

// encodeBundle serializes, checksums and compresses a bundle.
func encodeBundle(b *recommend.Bundle) (*envelope, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress bundle: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	return &envelope{
		Metadata: Metadata{
			BuildID:    b.BuildID,
			TrainedAt:  b.TrainedAt,
			SavedAt:    time.Now().UTC(),
			Checksum:   hex.EncodeToString(hash[:]),
			SizeBytes:  int64(compressed.Len()),
			BookCount:  len(b.Pivot.Titles),
			RaterCount: len(b.Pivot.Raters),
		},
		CompressedData: compressed.Bytes(),
	}, nil
}

// decodeBundle decompresses, verifies and deserializes a stored bundle.
func decodeBundle(env *envelope) (*recommend.Bundle, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", recommend.ErrArtifactCorrupt, err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read payload: %v", recommend.ErrArtifactCorrupt, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != env.Metadata.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s",
			recommend.ErrArtifactCorrupt, env.Metadata.Checksum, checksum)
	}

	var bundle recommend.Bundle
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("%w: decode bundle: %v", recommend.ErrArtifactCorrupt, err)
	}

	if bundle.BuildID != env.Metadata.BuildID {
		return nil, fmt.Errorf("%w: build tag mismatch: envelope %s, payload %s",
			recommend.ErrArtifactCorrupt, env.Metadata.BuildID, bundle.BuildID)
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("validate loaded bundle: %w", err)
	}

	return &bundle, nil
}
