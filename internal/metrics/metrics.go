// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TrainingRuns counts completed training runs by outcome.
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_training_runs_total",
			Help: "Total training runs by outcome",
		},
		[]string{"status"},
	)

	// TrainingDuration observes end-to-end training run duration.
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookwise_training_duration_seconds",
			Help:    "Duration of training runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// RecommendRequests counts recommendation queries by outcome.
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_recommend_requests_total",
			Help: "Total recommendation queries by outcome",
		},
		[]string{"status"},
	)

	// RecommendDuration observes recommendation query latency.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookwise_recommend_duration_seconds",
			Help:    "Latency of recommendation queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RecommendCacheHits counts queries served from the result cache.
	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookwise_recommend_cache_hits_total",
			Help: "Recommendation queries served from the result cache",
		},
	)

	// MissingPosters counts recommended titles that had no poster
	// reference and were served the sentinel instead.
	MissingPosters = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookwise_missing_posters_total",
			Help: "Recommended titles served without a poster reference",
		},
	)
)
