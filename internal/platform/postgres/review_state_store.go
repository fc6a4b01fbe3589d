package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of the
// ReviewStateStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

const reviewStateColumns = `id, user_id, item_id, group_id, project_id,
	ease_factor, interval_days, repetition_count,
	last_reviewed_at, next_review_at, created_at, updated_at`

// Create implements store.ReviewStateStore.Create
func (s *PostgresReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_states (` + reviewStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.ExecContext(ctx, query,
		state.ID,
		state.UserID,
		state.ItemID,
		state.GroupID,
		state.ProjectID,
		state.EaseFactor,
		state.IntervalDays,
		state.RepetitionCount,
		state.LastReviewedAt,
		state.NextReviewAt,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		s.logger.Error("failed to create review state",
			slog.String("user_id", state.UserID.String()),
			slog.String("item_id", state.ItemID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review state: %w", err)
	}

	return nil
}

// Get implements store.ReviewStateStore.Get
func (s *PostgresReviewStateStore) Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error) {
	query := `
		SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND item_id = $2
	`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, itemID))
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate.
// The FOR UPDATE clause serializes concurrent reviews of the same
// (user, item) pair; callers must hold an open transaction.
func (s *PostgresReviewStateStore) GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewState, error) {
	query := `
		SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND item_id = $2
		FOR UPDATE
	`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID, itemID))
}

// Update implements store.ReviewStateStore.Update
func (s *PostgresReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE review_states
		SET ease_factor = $1, interval_days = $2, repetition_count = $3,
			last_reviewed_at = $4, next_review_at = $5, updated_at = $6
		WHERE user_id = $7 AND item_id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		state.EaseFactor,
		state.IntervalDays,
		state.RepetitionCount,
		state.LastReviewedAt,
		state.NextReviewAt,
		state.UpdatedAt,
		state.UserID,
		state.ItemID,
	)
	if err != nil {
		s.logger.Error("failed to update review state",
			slog.String("user_id", state.UserID.String()),
			slog.String("item_id", state.ItemID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrReviewStateNotFound
	}

	return nil
}

// ListDue implements store.ReviewStateStore.ListDue
func (s *PostgresReviewStateStore) ListDue(
	ctx context.Context,
	userID, groupID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.ReviewState, error) {
	query := `
		SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND group_id = $2 AND next_review_at <= $3
		ORDER BY next_review_at ASC
	`
	args := []any{userID, groupID, now}

	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query due review states",
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query due review states: %w", err)
	}
	defer rows.Close()

	var states []*domain.ReviewState
	for rows.Next() {
		state, err := scanReviewState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review state row: %w", err)
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review state rows: %w", err)
	}

	return states, nil
}

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanOne maps a single-row query result, translating sql.ErrNoRows to the
// store's not-found sentinel.
func (s *PostgresReviewStateStore) scanOne(row *sql.Row) (*domain.ReviewState, error) {
	state := &domain.ReviewState{}
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&state.ID,
		&state.UserID,
		&state.ItemID,
		&state.GroupID,
		&state.ProjectID,
		&state.EaseFactor,
		&state.IntervalDays,
		&state.RepetitionCount,
		&lastReviewedAt,
		&state.NextReviewAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStateNotFound
		}
		return nil, fmt.Errorf("failed to get review state: %w", err)
	}

	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		state.LastReviewedAt = &t
	}

	return state, nil
}

// scanReviewState maps a row from a multi-row result set.
func scanReviewState(rows *sql.Rows) (*domain.ReviewState, error) {
	state := &domain.ReviewState{}
	var lastReviewedAt sql.NullTime

	err := rows.Scan(
		&state.ID,
		&state.UserID,
		&state.ItemID,
		&state.GroupID,
		&state.ProjectID,
		&state.EaseFactor,
		&state.IntervalDays,
		&state.RepetitionCount,
		&lastReviewedAt,
		&state.NextReviewAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		state.LastReviewedAt = &t
	}

	return state, nil
}
