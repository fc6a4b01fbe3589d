// Package reviews implements the spaced repetition engine's stateful side:
// recording quality-rated reviews against persistent schedule state and
// answering which items are due.
package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/srs"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// Service defines the review scheduling operations.
type Service interface {
	// RecordReview applies a 0-5 quality rating to the (user, item) pair's
	// schedule and returns the fully updated, persisted state. State is
	// created lazily with defaults on first practice. Quality outside
	// [0, 5] fails with ErrInvalidQuality; a missing item fails with
	// ErrItemNotFound.
	RecordReview(
		ctx context.Context,
		userID, itemID, groupID, projectID uuid.UUID,
		quality int,
	) (*domain.ReviewState, error)

	// GetDueItems returns the user's flashcards in the group whose next
	// review time has passed, most overdue first, capped at limit
	// (limit <= 0 means no cap). Returns an empty slice when the group has
	// spaced repetition disabled; the feature is explicit opt-in.
	GetDueItems(
		ctx context.Context,
		userID, groupID uuid.UUID,
		limit int,
	) ([]*domain.Flashcard, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db         *sql.DB
	states     store.ReviewStateStore
	flashcards store.FlashcardStore
	groups     store.StudyGroupStore
	srsService srs.Service
	clock      store.Clock
	logger     *slog.Logger
}

// NewService creates a new review scheduling Service.
func NewService(
	db *sql.DB,
	states store.ReviewStateStore,
	flashcards store.FlashcardStore,
	groups store.StudyGroupStore,
	srsService srs.Service,
	clock store.Clock,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if flashcards == nil {
		panic("flashcards cannot be nil")
	}
	if groups == nil {
		panic("groups cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if clock == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:         db,
		states:     states,
		flashcards: flashcards,
		groups:     groups,
		srsService: srsService,
		clock:      clock,
		logger:     log.With(slog.String("component", "review_service")),
	}
}

// RecordReview implements Service.RecordReview.
func (s *serviceImpl) RecordReview(
	ctx context.Context,
	userID, itemID, groupID, projectID uuid.UUID,
	quality int,
) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject malformed input before opening a transaction.
	if !domain.ValidQuality(quality) {
		log.Warn("invalid quality rating",
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID.String()),
			slog.Int("quality", quality))
		return nil, ErrInvalidQuality
	}

	var updated *domain.ReviewState
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		states := s.states.WithTx(tx)
		flashcards := s.flashcards.WithTx(tx)

		exists, err := flashcards.Exists(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to check item existence: %w", err)
		}
		if !exists {
			return ErrItemNotFound
		}

		now := s.clock.Now()

		// GetForUpdate serializes concurrent reviews of the same pair so
		// ease factor and interval updates are never lost.
		state, err := states.GetForUpdate(ctx, userID, itemID)
		created := false
		if err != nil {
			if !errors.Is(err, store.ErrReviewStateNotFound) {
				return fmt.Errorf("failed to get review state: %w", err)
			}
			state, err = domain.NewReviewState(userID, itemID, groupID, projectID, now)
			if err != nil {
				return fmt.Errorf("failed to create review state: %w", err)
			}
			created = true
		}

		newState, err := s.srsService.NextReview(state, quality, now)
		if err != nil {
			return fmt.Errorf("failed to compute next review: %w", err)
		}

		if created {
			if err := states.Create(ctx, newState); err != nil {
				return fmt.Errorf("failed to persist review state: %w", err)
			}
		} else {
			if err := states.Update(ctx, newState); err != nil {
				return fmt.Errorf("failed to persist review state: %w", err)
			}
		}

		updated = newState
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrInvalidQuality) {
			return nil, err
		}

		log.Error("failed to record review",
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record review: %w", err)
	}

	log.Debug("recorded review",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("quality", quality),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval_days", updated.IntervalDays),
		slog.Time("next_review_at", updated.NextReviewAt))

	return updated, nil
}

// GetDueItems implements Service.GetDueItems.
func (s *serviceImpl) GetDueItems(
	ctx context.Context,
	userID, groupID uuid.UUID,
	limit int,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get study group: %w", err)
	}

	if !group.SpacedRepetitionEnabled {
		log.Debug("spaced repetition disabled for group",
			slog.String("group_id", groupID.String()))
		return []*domain.Flashcard{}, nil
	}

	cards, err := s.flashcards.ListDue(ctx, userID, groupID, s.clock.Now(), limit)
	if err != nil {
		log.Error("failed to list due items",
			slog.String("user_id", userID.String()),
			slog.String("group_id", groupID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list due items: %w", err)
	}

	if cards == nil {
		cards = []*domain.Flashcard{}
	}

	return cards, nil
}
