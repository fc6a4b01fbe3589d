package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// CreateMultiple saves a batch of flashcards in one statement.
	// Returns validation errors if any card is invalid; the batch is
	// all-or-nothing.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrItemNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// Exists reports whether a flashcard with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListDue returns the user's flashcards in a group whose review state is
	// due at or before now, most overdue first. A limit <= 0 means no cap.
	ListDue(ctx context.Context, userID, groupID uuid.UUID, now time.Time, limit int) ([]*domain.Flashcard, error)

	// WithTx returns a new FlashcardStore bound to the provided transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}

// QuizQuestionStore defines the interface for quiz question persistence.
type QuizQuestionStore interface {
	// CreateMultiple saves a batch of quiz questions in one statement.
	CreateMultiple(ctx context.Context, questions []*domain.QuizQuestion) error

	// GetByID retrieves a quiz question by its unique ID.
	// Returns ErrItemNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuizQuestion, error)

	// Exists reports whether a quiz question with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a new QuizQuestionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) QuizQuestionStore
}

// StudyGroupStore defines the interface for study group persistence.
type StudyGroupStore interface {
	// Create saves a new study group.
	Create(ctx context.Context, group *domain.StudyGroup) error

	// GetByID retrieves a study group by its unique ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyGroup, error)

	// WithTx returns a new StudyGroupStore bound to the provided transaction.
	WithTx(tx *sql.Tx) StudyGroupStore
}
