package attempts_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/mocks"
	"github.com/studyloop/studyloop-api/internal/service/attempts"
)

type attemptFixture struct {
	service    attempts.Service
	attempts   *mocks.MemoryAttemptStore
	flashcards *mocks.MemoryFlashcardStore
	questions  *mocks.MemoryQuizQuestionStore
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()

	db := mocks.NewStubDB()
	t.Cleanup(func() { _ = db.Close() })

	store := mocks.NewMemoryAttemptStore()
	flashcards := mocks.NewMemoryFlashcardStore(nil)
	questions := mocks.NewMemoryQuizQuestionStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &attemptFixture{
		service:    attempts.NewService(db, store, flashcards, questions, log),
		attempts:   store,
		flashcards: flashcards,
		questions:  questions,
	}
}

func (f *attemptFixture) addFlashcard(t *testing.T, userID uuid.UUID) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(userID, uuid.New(), uuid.New(), "vocab", "la mesa", "the table")
	require.NoError(t, err)
	require.NoError(t, f.flashcards.CreateMultiple(context.Background(), []*domain.Flashcard{card}))
	return card
}

func (f *attemptFixture) addQuizQuestion(t *testing.T, userID uuid.UUID) *domain.QuizQuestion {
	t.Helper()
	question, err := domain.NewQuizQuestion(
		userID, uuid.New(), uuid.New(), "algebra",
		"What is 2+2?", []string{"3", "4", "5"}, "4",
	)
	require.NoError(t, err)
	require.NoError(t, f.questions.CreateMultiple(context.Background(), []*domain.QuizQuestion{question}))
	return question
}

func TestCreateAttemptFlashcard(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	card := f.addFlashcard(t, userID)

	attempt, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
		ProjectID:     uuid.New(),
		ItemType:      domain.ItemTypeFlashcard,
		ItemID:        card.ID,
		Topic:         "vocab",
		CorrectAnswer: "the table",
		WasCorrect:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, userID, attempt.UserID)
	assert.Equal(t, domain.ItemTypeFlashcard, attempt.ItemType)
	assert.Nil(t, attempt.UserAnswer)
	assert.Equal(t, 1, f.attempts.Count())
}

func TestCreateAttemptQuiz(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	question := f.addQuizQuestion(t, userID)

	answer := "3"
	attempt, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
		ProjectID:     uuid.New(),
		ItemType:      domain.ItemTypeQuiz,
		ItemID:        question.ID,
		Topic:         "algebra",
		UserAnswer:    &answer,
		CorrectAnswer: "4",
		WasCorrect:    false,
	})
	require.NoError(t, err)

	require.NotNil(t, attempt.UserAnswer)
	assert.Equal(t, "3", *attempt.UserAnswer)
	assert.False(t, attempt.WasCorrect)
}

func TestCreateAttemptMissingItemWritesNothing(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
		ProjectID:     uuid.New(),
		ItemType:      domain.ItemTypeFlashcard,
		ItemID:        uuid.New(),
		CorrectAnswer: "x",
	})
	assert.ErrorIs(t, err, attempts.ErrItemNotFound)
	assert.Zero(t, f.attempts.Count())
}

func TestCreateAttemptChecksMatchingStore(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	card := f.addFlashcard(t, userID)

	// The card's ID exists, but not as a quiz question.
	_, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
		ProjectID:     uuid.New(),
		ItemType:      domain.ItemTypeQuiz,
		ItemID:        card.ID,
		CorrectAnswer: "x",
	})
	assert.ErrorIs(t, err, attempts.ErrItemNotFound)
}

func TestCreateAttemptInvalidItemType(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)

	_, err := f.service.CreateAttempt(context.Background(), uuid.New(), attempts.NewAttempt{
		ProjectID:     uuid.New(),
		ItemType:      "essay",
		ItemID:        uuid.New(),
		CorrectAnswer: "x",
	})
	assert.ErrorIs(t, err, attempts.ErrInvalidItemType)
}

func TestCreateAttemptsBatchSkipsInvalidRecords(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	card := f.addFlashcard(t, userID)
	question := f.addQuizQuestion(t, userID)

	created, err := f.service.CreateAttemptsBatch(ctx, userID, []attempts.NewAttempt{
		{ProjectID: uuid.New(), ItemType: domain.ItemTypeFlashcard, ItemID: card.ID, CorrectAnswer: "the table", WasCorrect: true},
		{ProjectID: uuid.New(), ItemType: domain.ItemTypeFlashcard, ItemID: uuid.New(), CorrectAnswer: "missing"},
		{ProjectID: uuid.New(), ItemType: domain.ItemTypeQuiz, ItemID: question.ID, CorrectAnswer: "4", WasCorrect: false},
	})
	require.NoError(t, err)

	// Best effort: the missing item is skipped, the rest commits.
	require.Len(t, created, 2)
	assert.Equal(t, card.ID, created[0].ItemID)
	assert.Equal(t, question.ID, created[1].ItemID)
	assert.Equal(t, 2, f.attempts.Count())
}

func TestCreateAttemptsBatchAllInvalid(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.service.CreateAttemptsBatch(ctx, userID, []attempts.NewAttempt{
		{ProjectID: uuid.New(), ItemType: domain.ItemTypeFlashcard, ItemID: uuid.New(), CorrectAnswer: "x"},
		{ProjectID: uuid.New(), ItemType: "essay", ItemID: uuid.New(), CorrectAnswer: "y"},
	})
	assert.ErrorIs(t, err, attempts.ErrNoValidAttempts)
	assert.Zero(t, f.attempts.Count())
}

func TestGetUserAttemptsFiltersByProject(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	card := f.addFlashcard(t, userID)
	projectID := uuid.New()

	for _, project := range []uuid.UUID{projectID, projectID, uuid.New()} {
		_, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
			ProjectID:     project,
			ItemType:      domain.ItemTypeFlashcard,
			ItemID:        card.ID,
			CorrectAnswer: "the table",
		})
		require.NoError(t, err)
	}

	filtered, err := f.service.GetUserAttempts(ctx, userID, projectID, 0)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	all, err := f.service.GetUserAttempts(ctx, userID, uuid.Nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetUserAttemptsHonorsLimit(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	card := f.addFlashcard(t, userID)

	for i := 0; i < 5; i++ {
		_, err := f.service.CreateAttempt(ctx, userID, attempts.NewAttempt{
			ProjectID:     uuid.New(),
			ItemType:      domain.ItemTypeFlashcard,
			ItemID:        card.ID,
			CorrectAnswer: "the table",
		})
		require.NoError(t, err)
	}

	records, err := f.service.GetUserAttempts(ctx, userID, uuid.Nil, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestGetUserAttemptsEmptyHistory(t *testing.T) {
	t.Parallel()
	f := newAttemptFixture(t)

	records, err := f.service.GetUserAttempts(context.Background(), uuid.New(), uuid.Nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
