package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/service/usage"
)

// MockLimiter implements usage.Limiter for testing.
type MockLimiter struct {
	// Custom behavior functions
	CheckAndIncrementFn func(ctx context.Context, userID uuid.UUID, category domain.UsageCategory) error
	GetUsageFn          func(ctx context.Context, userID uuid.UUID) (*domain.UsageSnapshot, error)

	// Default response values
	Snapshot *domain.UsageSnapshot
	Err      error

	// Call tracking for verification
	mu              sync.Mutex
	CheckCallCount  int
	CheckedCategory domain.UsageCategory
}

// Ensure interface compliance
var _ usage.Limiter = (*MockLimiter)(nil)

// CheckAndIncrement implements usage.Limiter.
func (m *MockLimiter) CheckAndIncrement(ctx context.Context, userID uuid.UUID, category domain.UsageCategory) error {
	m.mu.Lock()
	m.CheckCallCount++
	m.CheckedCategory = category
	m.mu.Unlock()

	if m.CheckAndIncrementFn != nil {
		return m.CheckAndIncrementFn(ctx, userID, category)
	}
	return m.Err
}

// GetUsage implements usage.Limiter.
func (m *MockLimiter) GetUsage(ctx context.Context, userID uuid.UUID) (*domain.UsageSnapshot, error) {
	if m.GetUsageFn != nil {
		return m.GetUsageFn(ctx, userID)
	}
	return m.Snapshot, m.Err
}
