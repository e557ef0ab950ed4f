package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/service/auth"
	"github.com/minhokim/sejong-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserStore is an in-memory implementation of store.UserStore.
type memoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

var _ store.UserStore = (*memoryUserStore)(nil)

func newUserServiceForTest(t *testing.T) (UserService, *memoryUserStore) {
	t.Helper()
	userStore := newMemoryUserStore()
	svc := NewUserService(
		userStore,
		auth.NewBcryptHasher(4), // Minimum cost for fast tests
		auth.NewBcryptVerifier(),
		discardLogger(),
	)
	return svc, userStore
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		svc, userStore := newUserServiceForTest(t)

		user, err := svc.Register(ctx, "learner@example.com", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, "learner@example.com", user.Email)
		assert.Empty(t, user.Password, "plaintext is cleared after hashing")
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "a-long-enough-password", user.HashedPassword)

		stored, err := userStore.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.HashedPassword, stored.HashedPassword)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc, _ := newUserServiceForTest(t)

		_, err := svc.Register(ctx, "learner@example.com", "a-long-enough-password")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "learner@example.com", "another-long-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc, _ := newUserServiceForTest(t)

		tests := []struct {
			name     string
			email    string
			password string
		}{
			{name: "bad email", email: "not-an-email", password: "a-long-enough-password"},
			{name: "short password", email: "ok@example.com", password: "short"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.email, tt.password)
				assert.Error(t, err)
			})
		}
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	svc, _ := newUserServiceForTest(t)
	registered, err := svc.Register(ctx, "learner@example.com", "a-long-enough-password")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "learner@example.com", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "learner@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	svc, _ := newUserServiceForTest(t)
	user, err := svc.Register(ctx, "learner@example.com", "a-long-enough-password")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err = svc.GetUser(ctx, user.ID)
	assert.Error(t, err)

	err = svc.DeleteUser(ctx, user.ID)
	assert.Error(t, err, "deleting a missing user reports the error")
}
