// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// NearestNeighbors is a brute-force k-nearest-neighbors index over
// pivot table rows. It is a pure function of the pivot table: fitting
// the same table with the same metric always produces an index that
// answers every query identically.
//
// The index is immutable once fitted.
type NearestNeighbors struct {
	// Metric is the distance metric the index was fitted with.
	Metric string

	// Matrix holds the training rows in pivot row order.
	Matrix [][]float64

	// Norms holds the precomputed L2 norm of each row.
	Norms []float64
}

// FitNearestNeighbors fits an index over the pivot rows.
// Norm precomputation is chunked across cfg.NumWorkers goroutines; the
// worker count never changes the result.
func FitNearestNeighbors(ctx context.Context, pivot *PivotTable, cfg Config) (*NearestNeighbors, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("index config: %w", err)
	}
	if pivot == nil || len(pivot.Rows) == 0 {
		return nil, fmt.Errorf("%w: empty pivot table", ErrInsufficientData)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(pivot.Rows))
	for i, row := range pivot.Rows {
		r := make([]float64, len(row))
		copy(r, row)
		matrix[i] = r
	}

	norms := make([]float64, len(matrix))
	var wg sync.WaitGroup
	chunkSize := (len(matrix) + cfg.NumWorkers - 1) / cfg.NumWorkers

	for w := 0; w < cfg.NumWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(matrix) {
			end = len(matrix)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				var sum float64
				for _, v := range matrix[i] {
					sum += v * v
				}
				norms[i] = math.Sqrt(sum)
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &NearestNeighbors{
		Metric: cfg.Metric,
		Matrix: matrix,
		Norms:  norms,
	}, nil
}

// Columns returns the width of the training matrix.
func (nn *NearestNeighbors) Columns() int {
	if len(nn.Matrix) == 0 {
		return 0
	}
	return len(nn.Matrix[0])
}

// Query returns the k nearest row indices to the given vector along
// with their distances, sorted ascending by distance with ties broken
// by ascending row index. Querying with an exact training row returns
// that row first at distance 0.
//
// Returns ErrDimensionMismatch if the vector width differs from the
// training matrix and ErrInsufficientData if k exceeds the row count.
func (nn *NearestNeighbors) Query(vec []float64, k int) (distances []float64, indices []int, err error) {
	if k < 1 {
		return nil, nil, fmt.Errorf("query k must be positive, got %d", k)
	}
	if len(vec) != nn.Columns() {
		return nil, nil, fmt.Errorf("%w: query width %d, trained width %d",
			ErrDimensionMismatch, len(vec), nn.Columns())
	}
	if k > len(nn.Matrix) {
		return nil, nil, fmt.Errorf("%w: k=%d exceeds %d indexed rows",
			ErrInsufficientData, k, len(nn.Matrix))
	}

	type hit struct {
		idx  int
		dist float64
	}
	hits := make([]hit, len(nn.Matrix))

	switch nn.Metric {
	case MetricEuclidean:
		for i, row := range nn.Matrix {
			var sum float64
			for j := range row {
				d := vec[j] - row[j]
				sum += d * d
			}
			hits[i] = hit{idx: i, dist: math.Sqrt(sum)}
		}
	default: // MetricCosine
		var qNorm float64
		for _, v := range vec {
			qNorm += v * v
		}
		qNorm = math.Sqrt(qNorm)

		for i, row := range nn.Matrix {
			hits[i] = hit{idx: i, dist: cosineDistance(vec, row, qNorm, nn.Norms[i])}
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].dist != hits[b].dist {
			return hits[a].dist < hits[b].dist
		}
		return hits[a].idx < hits[b].idx
	})

	distances = make([]float64, k)
	indices = make([]int, k)
	for i := 0; i < k; i++ {
		distances[i] = hits[i].dist
		indices[i] = hits[i].idx
	}
	return distances, indices, nil
}

// cosineDistance returns 1 - cosine similarity, clamped to [0, 2].
// A zero-norm vector has no direction and is treated as maximally
// dissimilar (distance 1) to everything except another zero vector.
func cosineDistance(a, b []float64, normA, normB float64) float64 {
	if normA == 0 && normB == 0 {
		return 0
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	d := 1 - dot/(normA*normB)
	// Float rounding can push an exact self-match a hair off zero.
	if d < 1e-12 {
		return 0
	}
	if d > 2 {
		return 2
	}
	return d
}
