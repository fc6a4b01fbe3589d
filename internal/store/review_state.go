package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// ReviewStateStore defines the interface for review schedule persistence.
type ReviewStateStore interface {
	// Create saves a new review state entry.
	// It handles domain validation internally.
	// Returns ErrDuplicate if an entry for (user, item) already exists.
	Create(ctx context.Context, state *domain.ReviewState) error

	// Get retrieves review state by the combination of user ID and item ID.
	// Returns ErrReviewStateNotFound if the entry does not exist.
	// NOTE: This method does NOT provide any row locking, so it must not be
	// used when you plan to update the row and need concurrency protection.
	Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error)

	// GetForUpdate retrieves review state with a row-level lock using
	// SELECT FOR UPDATE. Use this within a transaction when the row will be
	// updated; it serializes concurrent reviews of the same (user, item)
	// pair. Returns ErrReviewStateNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error)

	// Update modifies an existing review state entry, identified by the
	// UserID and ItemID fields of the given state.
	// Returns ErrReviewStateNotFound if the entry does not exist.
	Update(ctx context.Context, state *domain.ReviewState) error

	// ListDue returns review states for the given user and group whose
	// NextReviewAt is at or before now, ordered ascending by NextReviewAt
	// (most overdue first). A limit <= 0 means no cap.
	ListDue(ctx context.Context, userID, groupID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewState, error)

	// WithTx returns a new ReviewStateStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ReviewStateStore
}
