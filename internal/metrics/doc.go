// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package metrics provides Prometheus metrics for the recommendation
engine.

# Available Metrics

Training:
  - bookwise_training_runs_total: Completed training runs (counter)
    Labels: status (ok, error)
  - bookwise_training_duration_seconds: Training run duration (histogram)
    Buckets: 1, 5, 10, 30, 60, 120, 300

Serving:
  - bookwise_recommend_requests_total: Recommendation queries (counter)
    Labels: status (ok, unknown_book, error)
  - bookwise_recommend_duration_seconds: Query latency (histogram)
    Buckets: default
  - bookwise_recommend_cache_hits_total: Queries served from the result
    cache (counter)
  - bookwise_missing_posters_total: Recommended titles without a poster
    reference (counter)

Metrics register on the default Prometheus registry; whether and how
they are exported is up to the embedding application.
*/
package metrics
