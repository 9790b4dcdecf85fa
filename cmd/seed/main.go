// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Command seed uploads processed CSV data into a region's object store.
//
// The server holds an exclusive lock on the BadgerDB directory, so seed runs
// before the server starts (or against a stopped region):
//
//	REGION=eu-west-1 STORAGE_PATH=/data/georec seed -dir ./data/eu-west-1
//
// The directory must contain user_item_matrix.csv and may contain
// products_with_features.csv. Both files are parsed before upload so a
// malformed matrix never reaches the bucket.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/georec/internal/config"
	"github.com/tomtom215/georec/internal/logging"
	"github.com/tomtom215/georec/internal/objectstore"
)

func main() {
	dir := flag.String("dir", ".", "directory containing the processed CSV files")
	regionName := flag.String("region", "", "target region (defaults to REGION from configuration)")
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
		Service:   "georec-seed",
		Output:    os.Stderr,
	})

	target := cfg.Region.Name
	if *regionName != "" {
		target = *regionName
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := objectstore.OpenBadger(cfg.Storage.Path, false)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open object store")
	}

	result, err := seedRegion(ctx, objectstore.NewBadgerStore(db), target, *dir, logging.Logger())
	if closeErr := db.Close(); closeErr != nil {
		logging.Error().Err(closeErr).Msg("Error closing object store")
	}
	if err != nil {
		logging.Fatal().Err(err).Str("region", target).Msg("Seeding failed")
	}

	logging.Info().
		Str("region", target).
		Str("bucket", result.Bucket).
		Strs("objects", result.Uploaded).
		Int("users", result.Users).
		Int("products", result.Products).
		Msg("Seeding complete")
}
