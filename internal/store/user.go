package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhokim/sejong-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
// Accounts exist so that deck and progress documents have a user to be
// keyed by; they are the only entity stored relationally.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
