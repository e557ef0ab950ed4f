package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// KV is the generic per-user document store every backend implements.
// Values are opaque JSON documents; Set overwrites wholesale.
type KV interface {
	// Get returns the document stored under key.
	// Returns ErrKeyNotFound if no document exists.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the document under key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the document under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// DeckKey returns the document key holding a user's vocabulary deck.
func DeckKey(userID uuid.UUID) string {
	return fmt.Sprintf("deck:%s", userID)
}

// ProgressKey returns the document key holding a user's gamification state.
func ProgressKey(userID uuid.UUID) string {
	return fmt.Sprintf("progress:%s", userID)
}
