package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// Custom behavior functions
	GenerateFlashcardsFn    func(ctx context.Context, sourceText, topic string, userID, groupID, projectID uuid.UUID, count int) ([]*domain.Flashcard, error)
	GenerateQuizQuestionsFn func(ctx context.Context, sourceText, topic string, userID, groupID, projectID uuid.UUID, count int) ([]*domain.QuizQuestion, error)

	// Default response values
	Flashcards []*domain.Flashcard
	Questions  []*domain.QuizQuestion
	Err        error

	// Call tracking for verification
	mu                  sync.Mutex
	FlashcardCallCount  int
	QuizCallCount       int
	LastSourceText      string
	LastTopic           string
	LastRequestedCount  int
}

// Ensure interface compliance
var _ generation.Generator = (*MockGenerator)(nil)

// GenerateFlashcards implements generation.Generator.
func (m *MockGenerator) GenerateFlashcards(
	ctx context.Context,
	sourceText, topic string,
	userID, groupID, projectID uuid.UUID,
	count int,
) ([]*domain.Flashcard, error) {
	m.mu.Lock()
	m.FlashcardCallCount++
	m.LastSourceText = sourceText
	m.LastTopic = topic
	m.LastRequestedCount = count
	m.mu.Unlock()

	if m.GenerateFlashcardsFn != nil {
		return m.GenerateFlashcardsFn(ctx, sourceText, topic, userID, groupID, projectID, count)
	}

	return m.Flashcards, m.Err
}

// GenerateQuizQuestions implements generation.Generator.
func (m *MockGenerator) GenerateQuizQuestions(
	ctx context.Context,
	sourceText, topic string,
	userID, groupID, projectID uuid.UUID,
	count int,
) ([]*domain.QuizQuestion, error) {
	m.mu.Lock()
	m.QuizCallCount++
	m.LastSourceText = sourceText
	m.LastTopic = topic
	m.LastRequestedCount = count
	m.mu.Unlock()

	if m.GenerateQuizQuestionsFn != nil {
		return m.GenerateQuizQuestionsFn(ctx, sourceText, topic, userID, groupID, projectID, count)
	}

	return m.Questions, m.Err
}
