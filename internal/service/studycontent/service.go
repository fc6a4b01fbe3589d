// Package studycontent orchestrates AI-backed content generation: each
// workflow consumes daily quota first, calls the generator, and persists the
// result. Quota failure short-circuits before any LLM call is made.
package studycontent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/service/usage"
	"github.com/studyloop/studyloop-api/internal/store"
)

// GenerateRequest carries the inputs of a generation workflow.
type GenerateRequest struct {
	GroupID    uuid.UUID
	ProjectID  uuid.UUID
	Topic      string
	SourceText string
	Count      int
}

// defaultItemCount is used when a request does not specify how many items
// to generate.
const defaultItemCount = 10

// Service defines the study content generation operations.
type Service interface {
	// GenerateFlashcards consumes one flashcard_generation quota unit, asks
	// the generator for cards and persists them. Quota errors pass through
	// unwrapped so callers can report remaining usage.
	GenerateFlashcards(ctx context.Context, userID uuid.UUID, req GenerateRequest) ([]*domain.Flashcard, error)

	// GenerateQuiz consumes one quiz_generation quota unit, asks the
	// generator for questions and persists them.
	GenerateQuiz(ctx context.Context, userID uuid.UUID, req GenerateRequest) ([]*domain.QuizQuestion, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db         *sql.DB
	generator  generation.Generator
	limiter    usage.Limiter
	groups     store.StudyGroupStore
	flashcards store.FlashcardStore
	questions  store.QuizQuestionStore
	logger     *slog.Logger
}

// NewService creates a study content generation Service.
func NewService(
	db *sql.DB,
	generator generation.Generator,
	limiter usage.Limiter,
	groups store.StudyGroupStore,
	flashcards store.FlashcardStore,
	questions store.QuizQuestionStore,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if limiter == nil {
		panic("limiter cannot be nil")
	}
	if groups == nil {
		panic("groups cannot be nil")
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
		generator:  generator,
		limiter:    limiter,
		groups:     groups,
		flashcards: flashcards,
		questions:  questions,
		logger:     log.With(slog.String("component", "studycontent_service")),
	}
}

// GenerateFlashcards implements Service.GenerateFlashcards.
func (s *serviceImpl) GenerateFlashcards(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateRequest,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.prepare(ctx, userID, req, domain.UsageCategoryFlashcardGeneration); err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultItemCount
	}

	cards, err := s.generator.GenerateFlashcards(
		ctx, req.SourceText, req.Topic, userID, req.GroupID, req.ProjectID, count)
	if err != nil {
		log.Error("flashcard generation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if err := s.flashcards.CreateMultiple(ctx, cards); err != nil {
		return nil, fmt.Errorf("failed to save generated flashcards: %w", err)
	}

	log.Info("flashcards generated",
		slog.String("user_id", userID.String()),
		slog.String("group_id", req.GroupID.String()),
		slog.Int("count", len(cards)))

	return cards, nil
}

// GenerateQuiz implements Service.GenerateQuiz.
func (s *serviceImpl) GenerateQuiz(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateRequest,
) ([]*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.prepare(ctx, userID, req, domain.UsageCategoryQuizGeneration); err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultItemCount
	}

	questions, err := s.generator.GenerateQuizQuestions(
		ctx, req.SourceText, req.Topic, userID, req.GroupID, req.ProjectID, count)
	if err != nil {
		log.Error("quiz generation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if err := s.questions.CreateMultiple(ctx, questions); err != nil {
		return nil, fmt.Errorf("failed to save generated quiz questions: %w", err)
	}

	log.Info("quiz generated",
		slog.String("user_id", userID.String()),
		slog.String("group_id", req.GroupID.String()),
		slog.Int("count", len(questions)))

	return questions, nil
}

// prepare validates the request, confirms the target group exists and
// consumes quota. The quota check runs last so rejected input never spends
// an LLM call allowance.
func (s *serviceImpl) prepare(
	ctx context.Context,
	userID uuid.UUID,
	req GenerateRequest,
	category domain.UsageCategory,
) error {
	if strings.TrimSpace(req.SourceText) == "" {
		return ErrEmptySourceText
	}

	if _, err := s.groups.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to look up study group: %w", err)
	}

	if err := s.limiter.CheckAndIncrement(ctx, userID, category); err != nil {
		// QuotaExceededError and storage failures pass through as-is.
		return err
	}

	return nil
}
