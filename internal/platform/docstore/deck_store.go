// Package docstore implements the deck and progress store interfaces on top
// of any store.KV backend. It owns the JSON encoding of the per-user
// documents; the backends only move opaque bytes.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/store"
)

// DeckStore implements store.DeckStore over a KV backend.
type DeckStore struct {
	kv     store.KV
	logger *slog.Logger
}

// NewDeckStore creates a DeckStore backed by the given KV.
// If logger is nil, a default logger will be used.
func NewDeckStore(kv store.KV, logger *slog.Logger) *DeckStore {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		kv:     kv,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore
var _ store.DeckStore = (*DeckStore)(nil)

// GetDeck implements store.DeckStore.GetDeck.
func (s *DeckStore) GetDeck(ctx context.Context, userID uuid.UUID) ([]domain.DeckEntry, error) {
	raw, err := s.kv.Get(ctx, store.DeckKey(userID))
	if err != nil {
		return nil, err
	}

	var deck []domain.DeckEntry
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck document: %w", err)
	}

	return deck, nil
}

// SaveDeck implements store.DeckStore.SaveDeck.
// The full deck is written back on every mutation; there is no partial update.
func (s *DeckStore) SaveDeck(ctx context.Context, userID uuid.UUID, deck []domain.DeckEntry) error {
	if deck == nil {
		deck = []domain.DeckEntry{}
	}

	raw, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to encode deck document: %w", err)
	}

	if err := s.kv.Set(ctx, store.DeckKey(userID), raw); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}

	s.logger.Debug("saved deck",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(deck)))
	return nil
}

// DeleteDeck implements store.DeckStore.DeleteDeck.
func (s *DeckStore) DeleteDeck(ctx context.Context, userID uuid.UUID) error {
	if err := s.kv.Delete(ctx, store.DeckKey(userID)); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}
