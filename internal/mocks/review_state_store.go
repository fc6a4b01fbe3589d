package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MemoryReviewStateStore is an in-memory store.ReviewStateStore keyed by
// (user, item).
type MemoryReviewStateStore struct {
	mu     sync.Mutex
	states map[userItemKey]*domain.ReviewState
}

type userItemKey struct {
	userID uuid.UUID
	itemID uuid.UUID
}

// Ensure interface compliance
var _ store.ReviewStateStore = (*MemoryReviewStateStore)(nil)

// NewMemoryReviewStateStore creates an empty MemoryReviewStateStore.
func NewMemoryReviewStateStore() *MemoryReviewStateStore {
	return &MemoryReviewStateStore{
		states: make(map[userItemKey]*domain.ReviewState),
	}
}

// Create implements store.ReviewStateStore.Create.
func (s *MemoryReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := userItemKey{state.UserID, state.ItemID}
	if _, exists := s.states[key]; exists {
		return store.ErrDuplicate
	}

	s.states[key] = copyReviewState(state)
	return nil
}

// Get implements store.ReviewStateStore.Get.
func (s *MemoryReviewStateStore) Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, exists := s.states[userItemKey{userID, itemID}]
	if !exists {
		return nil, store.ErrReviewStateNotFound
	}

	return copyReviewState(state), nil
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate. Row locking
// is emulated by the stub database's transaction mutex.
func (s *MemoryReviewStateStore) GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error) {
	return s.Get(ctx, userID, itemID)
}

// Update implements store.ReviewStateStore.Update.
func (s *MemoryReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := userItemKey{state.UserID, state.ItemID}
	if _, exists := s.states[key]; !exists {
		return store.ErrReviewStateNotFound
	}

	s.states[key] = copyReviewState(state)
	return nil
}

// ListDue implements store.ReviewStateStore.ListDue.
func (s *MemoryReviewStateStore) ListDue(
	ctx context.Context,
	userID, groupID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.ReviewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*domain.ReviewState, 0)
	for _, state := range s.states {
		if state.UserID == userID && state.GroupID == groupID && !state.NextReviewAt.After(now) {
			due = append(due, copyReviewState(state))
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	return due, nil
}

// WithTx implements store.ReviewStateStore.WithTx. The in-memory store
// ignores the transaction handle.
func (s *MemoryReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return s
}

func copyReviewState(state *domain.ReviewState) *domain.ReviewState {
	c := *state
	if state.LastReviewedAt != nil {
		t := *state.LastReviewedAt
		c.LastReviewedAt = &t
	}
	return &c
}
