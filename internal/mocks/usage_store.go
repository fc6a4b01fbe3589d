package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MemoryUsageCounterStore is an in-memory store.UsageCounterStore keyed by
// user ID.
type MemoryUsageCounterStore struct {
	mu       sync.Mutex
	counters map[uuid.UUID]*domain.UsageCounters
}

// Ensure interface compliance
var _ store.UsageCounterStore = (*MemoryUsageCounterStore)(nil)

// NewMemoryUsageCounterStore creates an empty MemoryUsageCounterStore.
func NewMemoryUsageCounterStore() *MemoryUsageCounterStore {
	return &MemoryUsageCounterStore{
		counters: make(map[uuid.UUID]*domain.UsageCounters),
	}
}

// Create implements store.UsageCounterStore.Create.
func (s *MemoryUsageCounterStore) Create(ctx context.Context, counters *domain.UsageCounters) error {
	if err := counters.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.counters[counters.UserID]; exists {
		return store.ErrDuplicate
	}

	s.counters[counters.UserID] = copyCounters(counters)
	return nil
}

// Get implements store.UsageCounterStore.Get.
func (s *MemoryUsageCounterStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters, exists := s.counters[userID]
	if !exists {
		return nil, store.ErrUsageCountersNotFound
	}

	return copyCounters(counters), nil
}

// GetForUpdate implements store.UsageCounterStore.GetForUpdate. Row locking
// is emulated by the stub database's transaction mutex.
func (s *MemoryUsageCounterStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error) {
	return s.Get(ctx, userID)
}

// Update implements store.UsageCounterStore.Update.
func (s *MemoryUsageCounterStore) Update(ctx context.Context, counters *domain.UsageCounters) error {
	if err := counters.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.counters[counters.UserID]; !exists {
		return store.ErrUsageCountersNotFound
	}

	s.counters[counters.UserID] = copyCounters(counters)
	return nil
}

// WithTx implements store.UsageCounterStore.WithTx. The in-memory store
// ignores the transaction handle.
func (s *MemoryUsageCounterStore) WithTx(tx *sql.Tx) store.UsageCounterStore {
	return s
}

func copyCounters(counters *domain.UsageCounters) *domain.UsageCounters {
	c := *counters
	return &c
}
