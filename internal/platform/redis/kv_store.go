// Package redis provides a Redis-backed implementation of the store.KV
// interface. Documents map one-to-one onto Redis string keys, which gives
// the same wholesale-overwrite, last-write-wins semantics as the other
// backends.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/minhokim/sejong-api/internal/store"
)

// RedisKV implements store.KV using a Redis server.
type RedisKV struct {
	client *goredis.Client
	logger *slog.Logger
}

// NewRedisKV creates a KV backed by the given Redis client.
// If logger is nil, a default logger will be used.
func NewRedisKV(client *goredis.Client, logger *slog.Logger) *RedisKV {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisKV{
		client: client,
		logger: logger.With(slog.String("component", "redis_kv")),
	}
}

// Ensure RedisKV implements store.KV
var _ store.KV = (*RedisKV)(nil)

// Get implements store.KV.Get.
func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return value, nil
}

// Set implements store.KV.Set. Documents have no TTL; they live until the
// admin reset path deletes them.
func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

// Delete implements store.KV.Delete.
func (s *RedisKV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
