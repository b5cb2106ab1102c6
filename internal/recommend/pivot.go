// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"fmt"
	"sync"
)

// PivotTable is the dense book-by-rater rating matrix produced by one
// training run. Rows are surviving books in first-seen order, columns
// are surviving raters in first-seen order, and a zero cell means "no
// rating", not "rated zero".
//
// The row order is fixed after build and is the canonical mapping
// between book title and row index for every downstream component.
type PivotTable struct {
	// Titles are the row labels in canonical order.
	Titles []string

	// Raters are the column labels in canonical order.
	Raters []int

	// Rows holds one rating vector per title; len(Rows[i]) == len(Raters).
	Rows [][]float64

	indexOnce  sync.Once
	titleIndex map[string]int
}

// RowIndex resolves a title to its row index by exact string match.
// No fuzzy matching and no case folding: a title must match the pivot
// row label byte for byte.
func (p *PivotTable) RowIndex(title string) (int, bool) {
	p.indexOnce.Do(func() {
		p.titleIndex = make(map[string]int, len(p.Titles))
		for i, t := range p.Titles {
			p.titleIndex[t] = i
		}
	})
	idx, ok := p.titleIndex[title]
	return idx, ok
}

// Row returns the rating vector at the given row index.
func (p *PivotTable) Row(i int) []float64 {
	return p.Rows[i]
}

// BuildPivot reduces raw rating records to a dense pivot table.
//
// Filtering runs in two passes matching the source pipeline: raters
// with fewer than MinRatingsPerRater ratings are dropped first, then
// books with fewer than MinRatingsPerBook surviving ratings. Duplicate
// (book, rater) pairs resolve as last write wins; the final occurrence
// in the input stream overwrites earlier ones.
//
// Returns ErrInsufficientData if fewer than Neighbors+1 books survive,
// since the index could not answer a Neighbors-wide query meaningfully.
func BuildPivot(ratings []Rating, cfg Config) (*PivotTable, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pivot config: %w", err)
	}

	// Pass 1: rating counts per rater.
	raterCounts := make(map[int]int)
	for i := range ratings {
		raterCounts[ratings[i].RaterID]++
	}

	// Pass 2: book counts over ratings from surviving raters.
	bookCounts := make(map[string]int)
	for i := range ratings {
		if raterCounts[ratings[i].RaterID] < cfg.MinRatingsPerRater {
			continue
		}
		bookCounts[ratings[i].BookTitle]++
	}

	// Pass 3: assign row/column indices in first-seen order and fill
	// cells. Later duplicates overwrite earlier ones.
	titleIndex := make(map[string]int)
	raterIndex := make(map[int]int)
	var titles []string
	var raters []int
	type cell struct {
		row, col int
		score    float64
	}
	var cells []cell

	for i := range ratings {
		r := &ratings[i]
		if raterCounts[r.RaterID] < cfg.MinRatingsPerRater {
			continue
		}
		if bookCounts[r.BookTitle] < cfg.MinRatingsPerBook {
			continue
		}

		row, ok := titleIndex[r.BookTitle]
		if !ok {
			row = len(titles)
			titleIndex[r.BookTitle] = row
			titles = append(titles, r.BookTitle)
		}
		col, ok := raterIndex[r.RaterID]
		if !ok {
			col = len(raters)
			raterIndex[r.RaterID] = col
			raters = append(raters, r.RaterID)
		}
		cells = append(cells, cell{row: row, col: col, score: r.Score})
	}

	if len(titles) < cfg.Neighbors+1 {
		return nil, fmt.Errorf("%w: %d books survived filtering, need at least %d",
			ErrInsufficientData, len(titles), cfg.Neighbors+1)
	}

	rows := make([][]float64, len(titles))
	for i := range rows {
		rows[i] = make([]float64, len(raters))
	}
	for _, c := range cells {
		rows[c.row][c.col] = c.score
	}

	return &PivotTable{
		Titles: titles,
		Raters: raters,
		Rows:   rows,
	}, nil
}
