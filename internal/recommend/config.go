// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import "fmt"

// Similarity metrics supported by the index. The metric is fixed per
// training run and recorded in the fitted index; results are not
// comparable across metrics.
const (
	// MetricCosine is cosine distance (1 - cosine similarity) over raw
	// rating vectors. Default. A zero cell means "no signal", not "rated
	// zero"; cosine ignores magnitude-free co-absence, which is why it
	// is the default for this representation.
	MetricCosine = "cosine"

	// MetricEuclidean is Euclidean distance over raw rating vectors.
	MetricEuclidean = "euclidean"
)

// Config contains all tunable parameters of the recommendation engine.
// Every threshold is an explicit, validated field; components receive
// the value at construction instead of reading shared state.
type Config struct {
	// Neighbors is the number of neighbors returned per query,
	// including the query book itself as its own nearest match at
	// distance 0. Neighbors=6 yields 5 other books.
	Neighbors int `koanf:"neighbors" json:"neighbors" validate:"min=1"`

	// Metric is the distance metric: "cosine" or "euclidean".
	Metric string `koanf:"metric" json:"metric" validate:"oneof=cosine euclidean"`

	// MinRatingsPerBook drops books rated fewer times than this before
	// pivoting. Tunable; the default matches the source dataset's
	// empirical threshold.
	MinRatingsPerBook int `koanf:"min_ratings_per_book" json:"min_ratings_per_book" validate:"min=1"`

	// MinRatingsPerRater drops raters with fewer ratings than this
	// before pivoting.
	MinRatingsPerRater int `koanf:"min_ratings_per_rater" json:"min_ratings_per_rater" validate:"min=1"`

	// NumWorkers is the number of parallel workers used while fitting.
	// An optimization only; results are identical for any worker count.
	NumWorkers int `koanf:"num_workers" json:"num_workers" validate:"min=0"`
}

// DefaultConfig returns engine defaults matching the source project's
// empirically chosen thresholds.
func DefaultConfig() Config {
	return Config{
		Neighbors:          6,
		Metric:             MetricCosine,
		MinRatingsPerBook:  50,
		MinRatingsPerRater: 200,
		NumWorkers:         4,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.Metric != MetricCosine && c.Metric != MetricEuclidean {
		return fmt.Errorf("metric must be %q or %q, got %q", MetricCosine, MetricEuclidean, c.Metric)
	}
	if c.MinRatingsPerBook < 1 {
		return fmt.Errorf("min_ratings_per_book must be positive, got %d", c.MinRatingsPerBook)
	}
	if c.MinRatingsPerRater < 1 {
		return fmt.Errorf("min_ratings_per_rater must be positive, got %d", c.MinRatingsPerRater)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("num_workers must be non-negative, got %d", c.NumWorkers)
	}
	return nil
}

// withDefaults fills zero fields so partially specified configs behave.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Neighbors <= 0 {
		c.Neighbors = d.Neighbors
	}
	if c.Metric == "" {
		c.Metric = d.Metric
	}
	if c.MinRatingsPerBook <= 0 {
		c.MinRatingsPerBook = d.MinRatingsPerBook
	}
	if c.MinRatingsPerRater <= 0 {
		c.MinRatingsPerRater = d.MinRatingsPerRater
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	return c
}
