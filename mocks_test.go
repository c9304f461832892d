package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/ddip/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeIdentityStore is a map-backed IdentityStore with the same unique-email
// behavior as the real repository.
type fakeIdentityStore struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{users: map[string]*auth.User{}}
}

func (f *fakeIdentityStore) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, auth.ErrIdentityNotFound
}

func (f *fakeIdentityStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeIdentityStore) Create(_ context.Context, user *auth.User) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return nil, auth.ErrEmailAlreadyExists
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.Email] = user

	clone := *user
	return &clone, nil
}

func (f *fakeIdentityStore) add(user *auth.User) *auth.User {
	created, _ := f.Create(context.Background(), user)
	return created
}

// MockRevocationStore implements auth.RevocationStore
type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) Revoke(ctx context.Context, token string, remainingTTL time.Duration) error {
	args := m.Called(ctx, token, remainingTTL)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// memRevocationStore is an in-process revocation store for handler tests
// that do not need redis semantics.
type memRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newMemRevocationStore() *memRevocationStore {
	return &memRevocationStore{entries: map[string]time.Time{}}
}

func (s *memRevocationStore) Revoke(_ context.Context, token string, remainingTTL time.Duration) error {
	if token == "" || remainingTTL <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[token]; !ok {
		s.entries[token] = time.Now().Add(remainingTTL)
	}
	return nil
}

func (s *memRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.entries[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.entries, token)
		return false, nil
	}
	return true, nil
}

func testConfig() auth.Config {
	return auth.Config{
		SigningKey:      "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 14 * 24 * time.Hour,
		CookieSecure:    true,
	}
}
