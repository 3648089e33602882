// Package main provides a CLI tool for importing journal registry exports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/helixir/journal-recommender-service/internal/config"
	"github.com/helixir/journal-recommender-service/internal/database"
	"github.com/helixir/journal-recommender-service/internal/events"
	"github.com/helixir/journal-recommender-service/internal/importer"
	"github.com/helixir/journal-recommender-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "", "Path to the registry export JSON file")
	timeout := flag.Duration("timeout", 30*time.Minute, "Maximum duration for the import run")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("no export file specified")
	}

	// Load configuration (database settings from env/config file).
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging with console output for the CLI tool.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		AddSource:  false,
		TimeFormat: time.RFC3339,
	})
	logger = logger.With().Str("component", "import").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.New(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info().Msg("database connection established")

	publisher := events.NewPublisher(events.Config{
		Enabled:      cfg.Kafka.Enabled,
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}, logger, nil)
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close event publisher")
		}
	}()

	imp := importer.NewImporter(db, publisher, nil, logger, importer.Config{
		BatchSize: cfg.Import.BatchSize,
		LockKey:   cfg.Import.LockKey,
	})

	summary, err := imp.ImportFile(ctx, *file)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info().
		Int("total", summary.Total).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Msg("import finished")
	return nil
}
