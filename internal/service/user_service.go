package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/service/auth"
	"github.com/minhokim/sejong-api/internal/store"
)

// UserService provides account operations: registration, credential checks,
// lookups, and deletion. Accounts exist so that deck and progress documents
// have a user ID to be keyed by.
type UserService interface {
	// Register creates a new account with the given email and plaintext
	// password. The password is hashed before it touches the store.
	// Returns store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies the credentials and returns the account.
	// Returns ErrInvalidCredentials for an unknown email or a wrong
	// password, indistinguishably.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// DeleteUser deletes the account row. The caller is responsible for
	// wiping the user's documents as well.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// Verify interface compliance at compile time
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil")
	}
	if hasher == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("hasher cannot be nil")
	}
	if verifier == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new user with the specified email and password.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("rejected invalid registration",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user to database",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email",
				"email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	s.logger.Debug("retrieved user successfully",
		"user_id", userID,
		"email", user.Email)

	return user, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := s.userStore.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", userID)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted successfully",
		"user_id", userID)

	return nil
}
