package generation

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// Generator defines the interface for generating study content from source
// material. It serves as a boundary between the application core and external
// AI/LLM services.
type Generator interface {
	// GenerateFlashcards creates flashcards for the given topic based on the
	// provided source text. It returns a slice of Flashcard domain objects or
	// an error if generation fails (see errors.go for specific types).
	GenerateFlashcards(
		ctx context.Context,
		sourceText, topic string,
		userID, groupID, projectID uuid.UUID,
		count int,
	) ([]*domain.Flashcard, error)

	// GenerateQuizQuestions creates multiple-choice quiz questions for the
	// given topic based on the provided source text.
	GenerateQuizQuestions(
		ctx context.Context,
		sourceText, topic string,
		userID, groupID, projectID uuid.UUID,
		count int,
	) ([]*domain.QuizQuestion, error)
}
