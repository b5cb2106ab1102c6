// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fixtureBundle assembles a valid bundle over fixturePivot. Book "C"
// intentionally has no metadata row.
func fixtureBundle(t *testing.T, cfg Config) *Bundle {
	t.Helper()

	pivot := fixturePivot()
	index, err := FitNearestNeighbors(context.Background(), pivot, cfg)
	if err != nil {
		t.Fatalf("FitNearestNeighbors() error = %v", err)
	}

	return &Bundle{
		BuildID:   "test-build",
		TrainedAt: time.Now().UTC(),
		Pivot:     pivot,
		Index:     index,
		Books: []Book{
			{Title: "A", Author: "Author A", ImageURL: "http://img/a.jpg"},
			{Title: "B", Author: "Author B", ImageURL: "http://img/b.jpg"},
			{Title: "D", Author: "Author D", ImageURL: "http://img/d.jpg"},
			{Title: "E", Author: "Author E", ImageURL: "http://img/e.jpg"},
			{Title: "F", Author: "Author F", ImageURL: "http://img/f.jpg"},
			{Title: "G", Author: "Author G", ImageURL: "http://img/g.jpg"},
		},
		RatingCount: 21,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := testConfig()
	cfg.Neighbors = 6
	svc, err := NewService(fixtureBundle(t, cfg), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestService_Recommend(t *testing.T) {
	svc := newTestService(t)

	recs, err := svc.Recommend(context.Background(), "A")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 6 {
		t.Fatalf("Recommend() returned %d results, want 6", len(recs))
	}

	// A and B are cosine-identical; the tie resolves to A first. The
	// remaining rows grow more distant in alphabetical order.
	wantTitles := []string{"A", "B", "C", "D", "E", "F"}
	for i, want := range wantTitles {
		if recs[i].Title != want {
			t.Errorf("recs[%d].Title = %q, want %q", i, recs[i].Title, want)
		}
	}

	if recs[0].Distance != 0 {
		t.Errorf("self distance = %v, want 0", recs[0].Distance)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Distance < recs[i-1].Distance {
			t.Errorf("distances not non-decreasing at %d: %v < %v", i, recs[i].Distance, recs[i-1].Distance)
		}
	}
}

func TestService_RecommendUnknownBook(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Recommend(context.Background(), "Nonexistent Title")
	if !errors.Is(err, ErrUnknownBook) {
		t.Errorf("Recommend() error = %v, want ErrUnknownBook", err)
	}

	// Title matching is strict; a case variant of a known title misses.
	_, err = svc.Recommend(context.Background(), "a")
	if !errors.Is(err, ErrUnknownBook) {
		t.Errorf("Recommend(lowercase) error = %v, want ErrUnknownBook", err)
	}
}

func TestService_RecommendMissingPoster(t *testing.T) {
	svc := newTestService(t)

	// "C" has no metadata row; the result carries the sentinel instead
	// of an error.
	recs, err := svc.Recommend(context.Background(), "A")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for _, rec := range recs {
		switch rec.Title {
		case "C":
			if rec.ImageURL != NoImageURL {
				t.Errorf("missing-metadata title image = %q, want sentinel %q", rec.ImageURL, NoImageURL)
			}
		case "A":
			if rec.ImageURL != "http://img/a.jpg" {
				t.Errorf("title A image = %q, want catalog URL", rec.ImageURL)
			}
		}
	}
}

func TestService_PosterURL(t *testing.T) {
	svc := newTestService(t)

	url, err := svc.PosterURL("B")
	if err != nil {
		t.Fatalf("PosterURL() error = %v", err)
	}
	if url != "http://img/b.jpg" {
		t.Errorf("PosterURL() = %q, want catalog URL", url)
	}

	if _, err := svc.PosterURL("C"); !errors.Is(err, ErrMissingMetadata) {
		t.Errorf("PosterURL(no metadata) error = %v, want ErrMissingMetadata", err)
	}
}

func TestService_Titles(t *testing.T) {
	svc := newTestService(t)

	titles := svc.Titles()
	want := []string{"A", "B", "C", "D", "E", "F", "G"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("Titles() = %v, want %v", titles, want)
	}

	// The returned slice is a copy; callers cannot corrupt the catalog.
	titles[0] = "mutated"
	if svc.Titles()[0] != "A" {
		t.Error("Titles() returned internal slice, want defensive copy")
	}
}

func TestService_RecommendMemoized(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Recommend(ctx, "A")
	if err != nil {
		t.Fatalf("first Recommend() error = %v", err)
	}

	second, err := svc.Recommend(ctx, "A")
	if err != nil {
		t.Fatalf("second Recommend() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("memoized result differs: %v vs %v", first, second)
	}

	// Callers get their own slice; mutating one result must not leak
	// into later queries.
	second[0].Title = "mutated"
	third, err := svc.Recommend(ctx, "A")
	if err != nil {
		t.Fatalf("third Recommend() error = %v", err)
	}
	if third[0].Title != "A" {
		t.Errorf("cached result was mutated through a caller's slice")
	}
}

func TestService_RejectsInvalidBundle(t *testing.T) {
	cfg := testConfig()
	cfg.Neighbors = 6

	tests := []struct {
		name   string
		mutate func(*Bundle)
		want   error
	}{
		{
			name:   "empty build id",
			mutate: func(b *Bundle) { b.BuildID = "" },
			want:   ErrArtifactCorrupt,
		},
		{
			name: "pivot and index disagree",
			mutate: func(b *Bundle) {
				b.Pivot.Titles = b.Pivot.Titles[:3]
				b.Pivot.Rows = b.Pivot.Rows[:3]
			},
			want: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := fixtureBundle(t, cfg)
			tt.mutate(bundle)
			if _, err := NewService(bundle, cfg, zerolog.Nop()); !errors.Is(err, tt.want) {
				t.Errorf("NewService() error = %v, want %v", err, tt.want)
			}
		})
	}
}
