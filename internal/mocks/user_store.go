package mocks

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MemoryUserStore is an in-memory store.UserStore with a case-insensitive
// email index.
type MemoryUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
}

// Ensure interface compliance
var _ store.UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Create implements store.UserStore.Create.
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return store.ErrEmailExists
	}

	u := *user
	s.users[user.ID] = &u
	s.byEmail[email] = user.ID
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	u := *user
	return &u, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	u := *s.users[id]
	return &u, nil
}

// WithTx implements store.UserStore.WithTx.
func (s *MemoryUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return s
}
