// Package attempts implements the append-only practice log: every answer
// event is validated against the item stores and recorded immutably.
package attempts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// NewAttempt carries the caller-supplied fields of a practice event.
type NewAttempt struct {
	ProjectID     uuid.UUID
	ItemType      domain.ItemType
	ItemID        uuid.UUID
	Topic         string
	UserAnswer    *string
	CorrectAnswer string
	WasCorrect    bool
}

// Service defines the attempt recording operations.
type Service interface {
	// CreateAttempt validates the referenced item and appends one practice
	// record. A missing item fails with ErrItemNotFound and writes nothing.
	CreateAttempt(ctx context.Context, userID uuid.UUID, input NewAttempt) (*domain.Attempt, error)

	// CreateAttemptsBatch appends a batch of practice records with
	// best-effort semantics: records that fail the existence check are
	// skipped with a logged warning and the valid subset commits. Returns
	// the created records.
	CreateAttemptsBatch(ctx context.Context, userID uuid.UUID, inputs []NewAttempt) ([]*domain.Attempt, error)

	// GetUserAttempts returns the user's practice history, newest first,
	// optionally filtered by project (uuid.Nil means all projects).
	// A limit <= 0 means no cap.
	GetUserAttempts(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*domain.Attempt, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db         *sql.DB
	attempts   store.AttemptStore
	flashcards store.FlashcardStore
	questions  store.QuizQuestionStore
	logger     *slog.Logger
}

// NewService creates a new attempt recording Service.
func NewService(
	db *sql.DB,
	attempts store.AttemptStore,
	flashcards store.FlashcardStore,
	questions store.QuizQuestionStore,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if attempts == nil {
		panic("attempts cannot be nil")
	}
	if flashcards == nil {
		panic("flashcards cannot be nil")
	}
	if questions == nil {
		panic("questions cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:         db,
		attempts:   attempts,
		flashcards: flashcards,
		questions:  questions,
		logger:     log.With(slog.String("component", "attempt_service")),
	}
}

// CreateAttempt implements Service.CreateAttempt.
func (s *serviceImpl) CreateAttempt(
	ctx context.Context,
	userID uuid.UUID,
	input NewAttempt,
) (*domain.Attempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.ItemType.Validate(); err != nil {
		return nil, ErrInvalidItemType
	}

	exists, err := s.itemExists(ctx, input.ItemType, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to check item existence: %w", err)
	}
	if !exists {
		log.Warn("attempt references missing item",
			slog.String("user_id", userID.String()),
			slog.String("item_type", string(input.ItemType)),
			slog.String("item_id", input.ItemID.String()))
		return nil, ErrItemNotFound
	}

	attempt, err := domain.NewAttempt(
		userID,
		input.ProjectID,
		input.ItemType,
		input.ItemID,
		input.Topic,
		input.UserAnswer,
		input.CorrectAnswer,
		input.WasCorrect,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			// The item was deleted between the existence check and the
			// insert; surface the same rejection.
			return nil, ErrItemNotFound
		}
		log.Error("failed to create attempt",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	return attempt, nil
}

// CreateAttemptsBatch implements Service.CreateAttemptsBatch.
func (s *serviceImpl) CreateAttemptsBatch(
	ctx context.Context,
	userID uuid.UUID,
	inputs []NewAttempt,
) ([]*domain.Attempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate every record before opening the transaction so rejected
	// items never hold the write path open.
	valid := make([]*domain.Attempt, 0, len(inputs))
	for i, input := range inputs {
		if err := input.ItemType.Validate(); err != nil {
			log.Warn("skipping batch attempt with invalid item type",
				slog.Int("index", i),
				slog.String("item_type", string(input.ItemType)))
			continue
		}

		exists, err := s.itemExists(ctx, input.ItemType, input.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to check item existence: %w", err)
		}
		if !exists {
			log.Warn("skipping batch attempt referencing missing item",
				slog.Int("index", i),
				slog.String("item_type", string(input.ItemType)),
				slog.String("item_id", input.ItemID.String()))
			continue
		}

		attempt, err := domain.NewAttempt(
			userID,
			input.ProjectID,
			input.ItemType,
			input.ItemID,
			input.Topic,
			input.UserAnswer,
			input.CorrectAnswer,
			input.WasCorrect,
		)
		if err != nil {
			log.Warn("skipping invalid batch attempt",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}

		valid = append(valid, attempt)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidAttempts
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		attempts := s.attempts.WithTx(tx)
		for _, attempt := range valid {
			if err := attempts.Create(ctx, attempt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create attempt batch",
			slog.String("user_id", userID.String()),
			slog.Int("batch_size", len(valid)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create attempt batch: %w", err)
	}

	log.Debug("recorded attempt batch",
		slog.String("user_id", userID.String()),
		slog.Int("submitted", len(inputs)),
		slog.Int("recorded", len(valid)))

	return valid, nil
}

// GetUserAttempts implements Service.GetUserAttempts.
func (s *serviceImpl) GetUserAttempts(
	ctx context.Context,
	userID, projectID uuid.UUID,
	limit int,
) ([]*domain.Attempt, error) {
	records, err := s.attempts.ListByUser(ctx, userID, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	if records == nil {
		records = []*domain.Attempt{}
	}

	return records, nil
}

// itemExists dispatches the existence check to the store matching the item
// type. The type has been validated already.
func (s *serviceImpl) itemExists(ctx context.Context, itemType domain.ItemType, itemID uuid.UUID) (bool, error) {
	switch itemType {
	case domain.ItemTypeFlashcard:
		return s.flashcards.Exists(ctx, itemID)
	case domain.ItemTypeQuiz:
		return s.questions.Exists(ctx, itemID)
	default:
		return false, ErrInvalidItemType
	}
}
