package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// UsageCounterStore defines the interface for per-user daily usage counters.
type UsageCounterStore interface {
	// Create saves a new counters row for a user.
	// Returns ErrDuplicate if a row for the user already exists.
	Create(ctx context.Context, counters *domain.UsageCounters) error

	// Get retrieves the counters row for a user without locking.
	// Returns ErrUsageCountersNotFound if no row exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error)

	// GetForUpdate retrieves the counters row with a row-level lock using
	// SELECT FOR UPDATE. The check-and-increment sequence must run against
	// this locked row inside one transaction so that two concurrent calls
	// cannot both observe a free slot.
	// Returns ErrUsageCountersNotFound if no row exists.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error)

	// Update persists the counters row identified by its UserID.
	// Returns ErrUsageCountersNotFound if no row exists.
	Update(ctx context.Context, counters *domain.UsageCounters) error

	// WithTx returns a new UsageCounterStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UsageCounterStore
}
