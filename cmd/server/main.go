// Package main implements the entry point for the Sejong API server,
// the backend for a Korean learning app: vocabulary deck with spaced
// repetition review, gamified progress tracking, and LLM-generated
// weekly quests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/minhokim/sejong-api/internal/config"
	"github.com/minhokim/sejong-api/internal/platform/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before starting the server")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	if err := run(*migrate, *migrateOnly); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires the application and starts the HTTP
// server. Split from main so errors flow back for a single exit point.
func run(migrate, migrateOnly bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("store_backend", cfg.Store.Backend))

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if migrate || migrateOnly {
		if err := runMigrations(ctx, db, appLogger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if migrateOnly {
			appLogger.Info("migrations complete, exiting")
			return nil
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
