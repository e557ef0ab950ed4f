package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	goredis "github.com/redis/go-redis/v9"

	"github.com/minhokim/sejong-api/internal/config"
	"github.com/minhokim/sejong-api/internal/platform/postgres"
	"github.com/minhokim/sejong-api/internal/platform/redis"
	"github.com/minhokim/sejong-api/internal/platform/restkv"
	"github.com/minhokim/sejong-api/internal/store"
)

// setupDatabase opens the Postgres connection pool and verifies it with a
// ping. User accounts always live here regardless of the document store
// backend.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// setupKV selects the key/value backend for per-user JSON documents based
// on configuration. Postgres reuses the main connection pool; redis and
// rest talk to their own endpoints.
func setupKV(cfg *config.Config, logger *slog.Logger, db *sql.DB) (store.KV, error) {
	switch cfg.Store.Backend {
	case "postgres":
		return postgres.NewPostgresKV(db, logger), nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		return redis.NewRedisKV(client, logger), nil

	case "rest":
		return restkv.NewClient(cfg.Store.RestBaseURL, nil, logger)

	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}
