package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// AttemptStore defines the interface for the append-only practice log.
// Attempts are inserted once and never updated or deleted.
type AttemptStore interface {
	// Create appends a single attempt record.
	Create(ctx context.Context, attempt *domain.Attempt) error

	// ListByUser returns a user's attempts, newest first, optionally
	// filtered by project (uuid.Nil means all projects). A limit <= 0 means
	// no cap.
	ListByUser(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*domain.Attempt, error)

	// WithTx returns a new AttemptStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) AttemptStore
}
