package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresAttemptStore implements the store.AttemptStore interface using a
// PostgreSQL database as the storage backend. Attempts are append-only;
// there is deliberately no update or delete path.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgreSQL implementation of the
// AttemptStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAttemptStore(db store.DBTX, logger *slog.Logger) *PostgresAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "attempt_store")),
	}
}

// Ensure PostgresAttemptStore implements store.AttemptStore
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// Create implements store.AttemptStore.Create
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO attempts (id, user_id, project_id, item_type, item_id,
			topic, user_answer, correct_answer, was_correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.ProjectID,
		attempt.ItemType,
		attempt.ItemID,
		attempt.Topic,
		attempt.UserAnswer,
		attempt.CorrectAnswer,
		attempt.WasCorrect,
		attempt.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrItemNotFound
		}
		s.logger.Error("failed to create attempt",
			slog.String("user_id", attempt.UserID.String()),
			slog.String("item_id", attempt.ItemID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create attempt: %w", err)
	}

	return nil
}

// ListByUser implements store.AttemptStore.ListByUser
func (s *PostgresAttemptStore) ListByUser(
	ctx context.Context,
	userID, projectID uuid.UUID,
	limit int,
) ([]*domain.Attempt, error) {
	query := `
		SELECT id, user_id, project_id, item_type, item_id,
			topic, user_answer, correct_answer, was_correct, created_at
		FROM attempts
		WHERE user_id = $1
	`
	args := []any{userID}

	if projectID != uuid.Nil {
		query += fmt.Sprintf(" AND project_id = $%d", len(args)+1)
		args = append(args, projectID)
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query attempts",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*domain.Attempt
	for rows.Next() {
		attempt := &domain.Attempt{}
		var userAnswer sql.NullString

		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.ProjectID,
			&attempt.ItemType,
			&attempt.ItemID,
			&attempt.Topic,
			&userAnswer,
			&attempt.CorrectAnswer,
			&attempt.WasCorrect,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt row: %w", err)
		}

		if userAnswer.Valid {
			answer := userAnswer.String
			attempt.UserAnswer = &answer
		}

		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempt rows: %w", err)
	}

	return attempts, nil
}

// WithTx implements store.AttemptStore.WithTx
func (s *PostgresAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &PostgresAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}
