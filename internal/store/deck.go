package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhokim/sejong-api/internal/domain"
)

// DeckStore defines the interface for deck persistence.
// A user's deck is one document; Save always writes the full deck back.
type DeckStore interface {
	// GetDeck retrieves the full deck for a user.
	// Returns ErrKeyNotFound if the user has never saved a word.
	GetDeck(ctx context.Context, userID uuid.UUID) ([]domain.DeckEntry, error)

	// SaveDeck overwrites the user's deck wholesale.
	SaveDeck(ctx context.Context, userID uuid.UUID, deck []domain.DeckEntry) error

	// DeleteDeck removes the user's deck entirely. Used by the admin reset
	// and account deletion paths.
	DeleteDeck(ctx context.Context, userID uuid.UUID) error
}

// ProgressStore defines the interface for gamification state persistence.
type ProgressStore interface {
	// GetState retrieves the user's progress document.
	// Returns ErrKeyNotFound if the user has no recorded progress.
	GetState(ctx context.Context, userID uuid.UUID) (*domain.ProgressState, error)

	// SaveState overwrites the user's progress document wholesale.
	SaveState(ctx context.Context, userID uuid.UUID, state *domain.ProgressState) error

	// DeleteState removes the user's progress document entirely.
	DeleteState(ctx context.Context, userID uuid.UUID) error
}
