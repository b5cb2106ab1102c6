// Bookwise - Collaborative-Filtering Book Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package main is the command-line entry point for Bookwise.
//
// Bookwise recommends books similar to a chosen title using item-based
// k-nearest-neighbors over historical rating data. The engine itself is
// a library under internal/recommend; this command is the thin caller
// that triggers training and runs queries.
//
// # Usage
//
//	bookwise train
//	bookwise recommend -title "The Hobbit"
//	bookwise titles
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (BOOKWISE_*)
//   - Config file (bookwise.yaml, or BOOKWISE_CONFIG)
//   - Built-in defaults
//
// Key settings:
//   - BOOKWISE_DATASET_BOOKS_PATH / BOOKWISE_DATASET_RATINGS_PATH:
//     input CSV locations
//   - BOOKWISE_ARTIFACTS_BACKEND: "fs" (default) or "badger"
//   - BOOKWISE_ARTIFACTS_PATH: artifact store location
//   - BOOKWISE_ENGINE_NEIGHBORS: neighbors per query (default 6,
//     including the query book itself)
//
// # Exit Behavior
//
// Running recommend before any training run reports the cold-start
// condition and asks the user to train first; it is not a crash.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookwise/internal/artifact"
	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/dataset"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Err(err).Msg("cannot load configuration")
		os.Exit(1)
	}
	logging.Init(cfg.Logging)

	ctx := context.Background()

	var runErr error
	switch os.Args[1] {
	case "train":
		runErr = runTrain(ctx, cfg)
	case "recommend":
		runErr = runRecommend(ctx, cfg, os.Args[2:])
	case "titles":
		runErr = runTitles(ctx, cfg)
	default:
		usage()
		os.Exit(2)
	}

	if runErr != nil {
		if errors.Is(runErr, recommend.ErrArtifactNotFound) {
			fmt.Fprintln(os.Stderr, "no trained model found - run `bookwise train` first")
			os.Exit(1)
		}
		logging.Err(runErr).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bookwise <train|recommend|titles> [flags]")
}

// openStore builds the configured bundle store. The returned closer is
// a no-op for the filesystem backend.
func openStore(cfg *config.Config) (recommend.BundleStore, func() error, error) {
	switch cfg.Artifacts.Backend {
	case config.BackendBadger:
		store, err := artifact.OpenBadgerStore(cfg.Artifacts.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := artifact.NewFSStore(cfg.Artifacts.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}
}

func runTrain(ctx context.Context, cfg *config.Config) error {
	loader := dataset.NewLoader(logging.Logger())

	books, err := loader.LoadBooks(cfg.Dataset.BooksPath)
	if err != nil {
		return err
	}
	ratings, err := loader.LoadRatings(cfg.Dataset.RatingsPath)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	trainer, err := recommend.NewTrainer(cfg.Engine, store, logging.Logger())
	if err != nil {
		return err
	}

	bundle, err := trainer.Run(ctx, ratings, books)
	if err != nil {
		return err
	}

	fmt.Printf("trained %d books, build %s\n", len(bundle.Pivot.Titles), bundle.BuildID[:12])
	return nil
}

func newService(ctx context.Context, cfg *config.Config) (*recommend.Service, func() error, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := store.Load(ctx)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}

	svc, err := recommend.NewService(bundle, cfg.Engine, logging.Logger())
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return svc, closeStore, nil
}

func runRecommend(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	title := fs.String("title", "", "book title to find similar books for (exact match)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return fmt.Errorf("recommend requires -title")
	}

	svc, closeStore, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	recs, err := svc.Recommend(ctx, *title)
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownBook) {
			fmt.Fprintf(os.Stderr, "unknown title %q - use `bookwise titles` to list valid titles\n", *title)
			os.Exit(1)
		}
		return err
	}

	out, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runTitles(ctx context.Context, cfg *config.Config) error {
	svc, closeStore, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	for _, title := range svc.Titles() {
		fmt.Println(title)
	}
	return nil
}
