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

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardColumns = `id, user_id, group_id, project_id, topic, front, back, created_at, updated_at`

// CreateMultiple implements store.FlashcardStore.CreateMultiple.
// The batch shares one INSERT per card on the caller's connection; run it
// inside a transaction for all-or-nothing semantics.
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	query := `
		INSERT INTO flashcards (` + flashcardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, card := range cards {
		_, err := s.db.ExecContext(ctx, query,
			card.ID,
			card.UserID,
			card.GroupID,
			card.ProjectID,
			card.Topic,
			card.Front,
			card.Back,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			s.logger.Error("failed to create flashcard",
				slog.String("card_id", card.ID.String()),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to create flashcard: %w", err)
		}
	}

	return nil
}

// GetByID implements store.FlashcardStore.GetByID
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE id = $1
	`

	card := &domain.Flashcard{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.UserID,
		&card.GroupID,
		&card.ProjectID,
		&card.Topic,
		&card.Front,
		&card.Back,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}

	return card, nil
}

// Exists implements store.FlashcardStore.Exists
func (s *PostgresFlashcardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM flashcards WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check flashcard existence: %w", err)
	}

	return exists, nil
}

// ListDue implements store.FlashcardStore.ListDue.
// The join against review_states orders results most-overdue-first, so a
// capped query still returns the cards that have waited longest.
func (s *PostgresFlashcardStore) ListDue(
	ctx context.Context,
	userID, groupID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT f.id, f.user_id, f.group_id, f.project_id, f.topic, f.front, f.back,
			f.created_at, f.updated_at
		FROM flashcards f
		JOIN review_states rs ON rs.item_id = f.id AND rs.user_id = $1
		WHERE f.group_id = $2 AND rs.next_review_at <= $3
		ORDER BY rs.next_review_at ASC
	`
	args := []any{userID, groupID, now}

	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query due flashcards",
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query due flashcards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Flashcard
	for rows.Next() {
		card := &domain.Flashcard{}
		err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.GroupID,
			&card.ProjectID,
			&card.Topic,
			&card.Front,
			&card.Back,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flashcard rows: %w", err)
	}

	return cards, nil
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}
