package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"encoding/json"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresQuizQuestionStore implements the store.QuizQuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuizQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizQuestionStore creates a new PostgreSQL implementation of
// the QuizQuestionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresQuizQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuizQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_question_store")),
	}
}

// Ensure PostgresQuizQuestionStore implements store.QuizQuestionStore
var _ store.QuizQuestionStore = (*PostgresQuizQuestionStore)(nil)

// CreateMultiple implements store.QuizQuestionStore.CreateMultiple
func (s *PostgresQuizQuestionStore) CreateMultiple(ctx context.Context, questions []*domain.QuizQuestion) error {
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	query := `
		INSERT INTO quiz_questions (id, user_id, group_id, project_id, topic,
			question, options, correct_answer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, q := range questions {
		// Options are stored as a JSONB array.
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to encode quiz options: %w", err)
		}

		_, err = s.db.ExecContext(ctx, query,
			q.ID,
			q.UserID,
			q.GroupID,
			q.ProjectID,
			q.Topic,
			q.Question,
			options,
			q.CorrectAnswer,
			q.CreatedAt,
			q.UpdatedAt,
		)
		if err != nil {
			s.logger.Error("failed to create quiz question",
				slog.String("question_id", q.ID.String()),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to create quiz question: %w", err)
		}
	}

	return nil
}

// GetByID implements store.QuizQuestionStore.GetByID
func (s *PostgresQuizQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizQuestion, error) {
	query := `
		SELECT id, user_id, group_id, project_id, topic,
			question, options, correct_answer, created_at, updated_at
		FROM quiz_questions
		WHERE id = $1
	`

	q := &domain.QuizQuestion{}
	var options []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.UserID,
		&q.GroupID,
		&q.ProjectID,
		&q.Topic,
		&q.Question,
		&options,
		&q.CorrectAnswer,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get quiz question: %w", err)
	}

	if err := json.Unmarshal(options, &q.Options); err != nil {
		return nil, fmt.Errorf("failed to decode quiz options: %w", err)
	}

	return q, nil
}

// Exists implements store.QuizQuestionStore.Exists
func (s *PostgresQuizQuestionStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM quiz_questions WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check quiz question existence: %w", err)
	}

	return exists, nil
}

// WithTx implements store.QuizQuestionStore.WithTx
func (s *PostgresQuizQuestionStore) WithTx(tx *sql.Tx) store.QuizQuestionStore {
	return &PostgresQuizQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}
