package studycontent_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
	"github.com/studyloop/studyloop-api/internal/mocks"
	"github.com/studyloop/studyloop-api/internal/service/studycontent"
	"github.com/studyloop/studyloop-api/internal/service/usage"
)

type contentFixture struct {
	service    studycontent.Service
	generator  *mocks.MockGenerator
	limiter    *mocks.MockLimiter
	groups     *mocks.MemoryStudyGroupStore
	flashcards *mocks.MemoryFlashcardStore
	questions  *mocks.MemoryQuizQuestionStore
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()

	db := mocks.NewStubDB()
	t.Cleanup(func() { _ = db.Close() })

	generator := &mocks.MockGenerator{}
	limiter := &mocks.MockLimiter{}
	groups := mocks.NewMemoryStudyGroupStore()
	flashcards := mocks.NewMemoryFlashcardStore(nil)
	questions := mocks.NewMemoryQuizQuestionStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &contentFixture{
		service:    studycontent.NewService(db, generator, limiter, groups, flashcards, questions, log),
		generator:  generator,
		limiter:    limiter,
		groups:     groups,
		flashcards: flashcards,
		questions:  questions,
	}
}

func (f *contentFixture) addGroup(t *testing.T, ownerID uuid.UUID) *domain.StudyGroup {
	t.Helper()
	group, err := domain.NewStudyGroup(ownerID, "Spanish", true)
	require.NoError(t, err)
	require.NoError(t, f.groups.Create(context.Background(), group))
	return group
}

func generatedCards(t *testing.T, userID, groupID, projectID uuid.UUID, n int) []*domain.Flashcard {
	t.Helper()
	cards := make([]*domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewFlashcard(userID, groupID, projectID, "vocab", "front", "back")
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

func TestGenerateFlashcardsPersistsResult(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)
	projectID := uuid.New()

	f.generator.Flashcards = generatedCards(t, userID, group.ID, projectID, 3)

	cards, err := f.service.GenerateFlashcards(ctx, userID, studycontent.GenerateRequest{
		GroupID:    group.ID,
		ProjectID:  projectID,
		Topic:      "vocab",
		SourceText: "La mesa means the table.",
		Count:      3,
	})
	require.NoError(t, err)
	require.Len(t, cards, 3)

	// Quota consumed against the flashcard category, generator called once,
	// cards persisted.
	assert.Equal(t, 1, f.limiter.CheckCallCount)
	assert.Equal(t, domain.UsageCategoryFlashcardGeneration, f.limiter.CheckedCategory)
	assert.Equal(t, 1, f.generator.FlashcardCallCount)
	assert.Equal(t, 3, f.generator.LastRequestedCount)

	exists, err := f.flashcards.Exists(ctx, cards[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerateQuizPersistsResult(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)
	projectID := uuid.New()

	question, err := domain.NewQuizQuestion(
		userID, group.ID, projectID, "algebra",
		"What is 2+2?", []string{"3", "4"}, "4",
	)
	require.NoError(t, err)
	f.generator.Questions = []*domain.QuizQuestion{question}

	questions, err := f.service.GenerateQuiz(ctx, userID, studycontent.GenerateRequest{
		GroupID:    group.ID,
		ProjectID:  projectID,
		Topic:      "algebra",
		SourceText: "Basic arithmetic.",
		Count:      1,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, domain.UsageCategoryQuizGeneration, f.limiter.CheckedCategory)

	exists, err := f.questions.Exists(ctx, question.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerateFlashcardsQuotaExceededSkipsGenerator(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)

	f.limiter.Err = &usage.QuotaExceededError{
		Category: domain.UsageCategoryFlashcardGeneration,
		Used:     3,
		Limit:    3,
	}

	_, err := f.service.GenerateFlashcards(ctx, userID, studycontent.GenerateRequest{
		GroupID:    group.ID,
		ProjectID:  uuid.New(),
		SourceText: "some text",
	})
	require.Error(t, err)

	// The quota error passes through unwrapped and no LLM call is spent.
	var quotaErr *usage.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 3, quotaErr.Used)
	assert.Zero(t, f.generator.FlashcardCallCount)
}

func TestGenerateRejectsEmptySourceText(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)

	for _, sourceText := range []string{"", "   ", "\n\t"} {
		_, err := f.service.GenerateFlashcards(ctx, userID, studycontent.GenerateRequest{
			GroupID:    group.ID,
			ProjectID:  uuid.New(),
			SourceText: sourceText,
		})
		assert.ErrorIs(t, err, studycontent.ErrEmptySourceText, "source %q", sourceText)
	}

	// Rejected input never consumes quota or calls the generator.
	assert.Zero(t, f.limiter.CheckCallCount)
	assert.Zero(t, f.generator.FlashcardCallCount)
}

func TestGenerateRejectsMissingGroup(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)

	_, err := f.service.GenerateQuiz(context.Background(), uuid.New(), studycontent.GenerateRequest{
		GroupID:    uuid.New(),
		ProjectID:  uuid.New(),
		SourceText: "some text",
	})
	assert.ErrorIs(t, err, studycontent.ErrGroupNotFound)
	assert.Zero(t, f.limiter.CheckCallCount)
}

func TestGenerateDefaultsItemCount(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)

	f.generator.Flashcards = generatedCards(t, userID, group.ID, uuid.New(), 1)

	_, err := f.service.GenerateFlashcards(ctx, userID, studycontent.GenerateRequest{
		GroupID:    group.ID,
		ProjectID:  uuid.New(),
		SourceText: "some text",
		// Count omitted.
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.generator.LastRequestedCount)
}

func TestGenerateFlashcardsGeneratorFailure(t *testing.T) {
	t.Parallel()
	f := newContentFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	group := f.addGroup(t, userID)

	f.generator.Err = generation.ErrInvalidResponse

	_, err := f.service.GenerateFlashcards(ctx, userID, studycontent.GenerateRequest{
		GroupID:    group.ID,
		ProjectID:  uuid.New(),
		SourceText: "some text",
	})
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}
