// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package dataset loads the read-only training inputs.
//
// Two tabular CSV files are consumed: a book catalog and per-rating
// records. Columns are resolved by header name with a short alias list
// per logical field, so the files' exact schema stays a data-owner
// concern; the engine only needs title, rater and score to resolve.
//
// Malformed rows are skipped and counted, never fatal. Rating dumps in
// the wild carry stray quotes and truncated lines.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// Column aliases per logical field, matched case-sensitively against
// the CSV header.
var (
	titleColumns  = []string{"title", "book_title"}
	authorColumns = []string{"author", "book_author"}
	imageColumns  = []string{"image_url", "img_url", "poster_url"}
	avgColumns    = []string{"avg_rating", "average_rating"}
	countColumns  = []string{"rating_count", "num_ratings"}
	raterColumns  = []string{"user_id", "rater_id", "user"}
	scoreColumns  = []string{"rating", "score"}
)

// Loader reads the catalog and rating CSVs.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a dataset loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "dataset").Logger()}
}

// LoadBooks reads the book catalog. The title column is required; all
// other columns are optional display metadata.
func (l *Loader) LoadBooks(path string) ([]recommend.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open books file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read books header: %w", err)
	}

	titleCol, err := resolveColumn(header, titleColumns)
	if err != nil {
		return nil, fmt.Errorf("books file: %w", err)
	}
	authorCol := optionalColumn(header, authorColumns)
	imageCol := optionalColumn(header, imageColumns)
	avgCol := optionalColumn(header, avgColumns)
	countCol := optionalColumn(header, countColumns)

	var books []recommend.Book
	skipped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if titleCol >= len(record) || record[titleCol] == "" {
			skipped++
			continue
		}

		b := recommend.Book{Title: record[titleCol]}
		if v, ok := field(record, authorCol); ok {
			b.Author = v
		}
		if v, ok := field(record, imageCol); ok {
			b.ImageURL = v
		}
		if v, ok := field(record, avgCol); ok {
			if avg, err := strconv.ParseFloat(v, 64); err == nil {
				b.AvgRating = avg
			}
		}
		if v, ok := field(record, countCol); ok {
			if n, err := strconv.Atoi(v); err == nil {
				b.RatingCount = n
			}
		}
		books = append(books, b)
	}

	l.logger.Info().
		Str("path", path).
		Int("books", len(books)).
		Int("skipped", skipped).
		Msg("book catalog loaded")

	return books, nil
}

// LoadRatings reads the rating records. Title, rater and score columns
// are all required.
func (l *Loader) LoadRatings(path string) ([]recommend.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read ratings header: %w", err)
	}

	titleCol, err := resolveColumn(header, titleColumns)
	if err != nil {
		return nil, fmt.Errorf("ratings file: %w", err)
	}
	raterCol, err := resolveColumn(header, raterColumns)
	if err != nil {
		return nil, fmt.Errorf("ratings file: %w", err)
	}
	scoreCol, err := resolveColumn(header, scoreColumns)
	if err != nil {
		return nil, fmt.Errorf("ratings file: %w", err)
	}

	var ratings []recommend.Rating
	skipped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		title, titleOK := field(record, titleCol)
		raterStr, raterOK := field(record, raterCol)
		scoreStr, scoreOK := field(record, scoreCol)
		if !titleOK || !raterOK || !scoreOK {
			skipped++
			continue
		}

		rater, err := strconv.Atoi(raterStr)
		if err != nil {
			skipped++
			continue
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			skipped++
			continue
		}

		ratings = append(ratings, recommend.Rating{
			BookTitle: title,
			RaterID:   rater,
			Score:     score,
		})
	}

	l.logger.Info().
		Str("path", path).
		Int("ratings", len(ratings)).
		Int("skipped", skipped).
		Msg("rating records loaded")

	return ratings, nil
}

// resolveColumn finds the index of the first alias present in the header.
func resolveColumn(header []string, aliases []string) (int, error) {
	for _, alias := range aliases {
		for i, col := range header {
			if col == alias {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no column named any of %v in header %v", aliases, header)
}

// optionalColumn is resolveColumn without the error; -1 means absent.
func optionalColumn(header []string, aliases []string) int {
	idx, err := resolveColumn(header, aliases)
	if err != nil {
		return -1
	}
	return idx
}

// field safely extracts a column value; ok is false for absent columns,
// short records and empty values.
func field(record []string, col int) (string, bool) {
	if col < 0 || col >= len(record) || record[col] == "" {
		return "", false
	}
	return record[col], true
}
