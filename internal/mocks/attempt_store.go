package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MemoryAttemptStore is an in-memory store.AttemptStore.
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts []*domain.Attempt
}

// Ensure interface compliance
var _ store.AttemptStore = (*MemoryAttemptStore)(nil)

// NewMemoryAttemptStore creates an empty MemoryAttemptStore.
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{}
}

// Create implements store.AttemptStore.Create.
func (s *MemoryAttemptStore) Create(ctx context.Context, attempt *domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = append(s.attempts, copyAttempt(attempt))
	return nil
}

// ListByUser implements store.AttemptStore.ListByUser.
func (s *MemoryAttemptStore) ListByUser(
	ctx context.Context,
	userID, projectID uuid.UUID,
	limit int,
) ([]*domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.Attempt, 0)
	for _, attempt := range s.attempts {
		if attempt.UserID != userID {
			continue
		}
		if projectID != uuid.Nil && attempt.ProjectID != projectID {
			continue
		}
		matched = append(matched, copyAttempt(attempt))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// WithTx implements store.AttemptStore.WithTx. The in-memory store ignores
// the transaction handle.
func (s *MemoryAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return s
}

// Count returns the number of stored attempts.
func (s *MemoryAttemptStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func copyAttempt(attempt *domain.Attempt) *domain.Attempt {
	c := *attempt
	if attempt.UserAnswer != nil {
		answer := *attempt.UserAnswer
		c.UserAnswer = &answer
	}
	return &c
}
