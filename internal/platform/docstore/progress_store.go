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

// ProgressStore implements store.ProgressStore over a KV backend.
type ProgressStore struct {
	kv     store.KV
	logger *slog.Logger
}

// NewProgressStore creates a ProgressStore backed by the given KV.
// If logger is nil, a default logger will be used.
func NewProgressStore(kv store.KV, logger *slog.Logger) *ProgressStore {
	if kv == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("kv cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressStore{
		kv:     kv,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure ProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*ProgressStore)(nil)

// GetState implements store.ProgressStore.GetState.
func (s *ProgressStore) GetState(ctx context.Context, userID uuid.UUID) (*domain.ProgressState, error) {
	raw, err := s.kv.Get(ctx, store.ProgressKey(userID))
	if err != nil {
		return nil, err
	}

	var state domain.ProgressState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode progress document: %w", err)
	}

	return &state, nil
}

// SaveState implements store.ProgressStore.SaveState.
func (s *ProgressStore) SaveState(ctx context.Context, userID uuid.UUID, state *domain.ProgressState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode progress document: %w", err)
	}

	if err := s.kv.Set(ctx, store.ProgressKey(userID), raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Debug("saved progress",
		slog.String("user_id", userID.String()),
		slog.Int("xp", state.XP),
		slog.Int("streak", state.Streak))
	return nil
}

// DeleteState implements store.ProgressStore.DeleteState.
func (s *ProgressStore) DeleteState(ctx context.Context, userID uuid.UUID) error {
	if err := s.kv.Delete(ctx, store.ProgressKey(userID)); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}
