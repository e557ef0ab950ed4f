// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/minhokim/sejong-api/internal/store"
)

// PostgresKV implements the store.KV interface using a single JSONB
// documents table. Upserts give the same last-write-wins semantics as the
// other backends.
type PostgresKV struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresKV creates a new PostgreSQL implementation of the KV interface.
// It accepts a database connection that should be initialized and managed by
// the caller. If logger is nil, a default logger will be used.
func NewPostgresKV(db *sql.DB, logger *slog.Logger) *PostgresKV {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKV{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_kv")),
	}
}

// Ensure PostgresKV implements store.KV
var _ store.KV = (*PostgresKV)(nil)

// Get implements store.KV.Get.
func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT doc FROM user_documents WHERE key = $1`

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// Set implements store.KV.Set.
func (s *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO user_documents (key, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}

	return nil
}

// Delete implements store.KV.Delete.
func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM user_documents WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
