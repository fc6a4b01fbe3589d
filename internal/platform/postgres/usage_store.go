package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresUsageCounterStore implements the store.UsageCounterStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUsageCounterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUsageCounterStore creates a new PostgreSQL implementation of
// the UsageCounterStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUsageCounterStore(db store.DBTX, logger *slog.Logger) *PostgresUsageCounterStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUsageCounterStore{
		db:     db,
		logger: logger.With(slog.String("component", "usage_counter_store")),
	}
}

// Ensure PostgresUsageCounterStore implements store.UsageCounterStore
var _ store.UsageCounterStore = (*PostgresUsageCounterStore)(nil)

const usageCounterColumns = `user_id, chat_messages_today, flashcard_generations_today,
	quiz_generations_today, document_uploads_today, last_reset_date, created_at, updated_at`

// Create implements store.UsageCounterStore.Create
func (s *PostgresUsageCounterStore) Create(ctx context.Context, counters *domain.UsageCounters) error {
	if err := counters.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// ON CONFLICT DO NOTHING keeps a lost insert race from aborting the
	// caller's transaction; the duplicate is reported via RowsAffected so
	// the caller can fall back to locking the winner's row.
	query := `
		INSERT INTO usage_counters (` + usageCounterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		counters.UserID,
		counters.ChatMessagesToday,
		counters.FlashcardGensToday,
		counters.QuizGensToday,
		counters.DocumentUploadsToday,
		counters.LastResetDate,
		counters.CreatedAt,
		counters.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create usage counters",
			slog.String("user_id", counters.UserID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create usage counters: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrDuplicate
	}

	return nil
}

// Get implements store.UsageCounterStore.Get
func (s *PostgresUsageCounterStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error) {
	query := `
		SELECT ` + usageCounterColumns + `
		FROM usage_counters
		WHERE user_id = $1
	`

	return scanUsageCounters(s.db.QueryRowContext(ctx, query, userID))
}

// GetForUpdate implements store.UsageCounterStore.GetForUpdate.
// Locking the counter row for the duration of the transaction is what makes
// the rollover-check-increment sequence atomic per user: a second caller
// blocks here until the first commits, then observes the updated count.
func (s *PostgresUsageCounterStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UsageCounters, error) {
	query := `
		SELECT ` + usageCounterColumns + `
		FROM usage_counters
		WHERE user_id = $1
		FOR UPDATE
	`

	return scanUsageCounters(s.db.QueryRowContext(ctx, query, userID))
}

// Update implements store.UsageCounterStore.Update
func (s *PostgresUsageCounterStore) Update(ctx context.Context, counters *domain.UsageCounters) error {
	if err := counters.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE usage_counters
		SET chat_messages_today = $1, flashcard_generations_today = $2,
			quiz_generations_today = $3, document_uploads_today = $4,
			last_reset_date = $5, updated_at = $6
		WHERE user_id = $7
	`

	result, err := s.db.ExecContext(ctx, query,
		counters.ChatMessagesToday,
		counters.FlashcardGensToday,
		counters.QuizGensToday,
		counters.DocumentUploadsToday,
		counters.LastResetDate,
		counters.UpdatedAt,
		counters.UserID,
	)
	if err != nil {
		s.logger.Error("failed to update usage counters",
			slog.String("user_id", counters.UserID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update usage counters: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrUsageCountersNotFound
	}

	return nil
}

// WithTx implements store.UsageCounterStore.WithTx
func (s *PostgresUsageCounterStore) WithTx(tx *sql.Tx) store.UsageCounterStore {
	return &PostgresUsageCounterStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanUsageCounters(row *sql.Row) (*domain.UsageCounters, error) {
	counters := &domain.UsageCounters{}

	err := row.Scan(
		&counters.UserID,
		&counters.ChatMessagesToday,
		&counters.FlashcardGensToday,
		&counters.QuizGensToday,
		&counters.DocumentUploadsToday,
		&counters.LastResetDate,
		&counters.CreatedAt,
		&counters.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUsageCountersNotFound
		}
		return nil, fmt.Errorf("failed to get usage counters: %w", err)
	}

	return counters, nil
}
