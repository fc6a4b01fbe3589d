package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for QuizQuestion
var (
	ErrEmptyQuestionUserID = errors.New("quiz question user ID cannot be empty")
	ErrEmptyQuestionText   = errors.New("quiz question text cannot be empty")
	ErrEmptyQuestionAnswer = errors.New("quiz question correct answer cannot be empty")
	ErrTooFewOptions       = errors.New("quiz question needs at least two options")
)

// QuizQuestion is a multiple-choice question generated from course documents.
// Together with flashcards these are the items validated by the attempt
// recording flow.
type QuizQuestion struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	GroupID       uuid.UUID `json:"group_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	Topic         string    `json:"topic"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewQuizQuestion creates a quiz question with a generated ID and timestamps.
// Returns an error if validation fails.
func NewQuizQuestion(
	userID, groupID, projectID uuid.UUID,
	topic, question string,
	options []string,
	correctAnswer string,
) (*QuizQuestion, error) {
	now := time.Now().UTC()
	q := &QuizQuestion{
		ID:            uuid.New(),
		UserID:        userID,
		GroupID:       groupID,
		ProjectID:     projectID,
		Topic:         topic,
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the QuizQuestion has valid data.
func (q *QuizQuestion) Validate() error {
	if q.UserID == uuid.Nil {
		return ErrEmptyQuestionUserID
	}

	if q.Question == "" {
		return ErrEmptyQuestionText
	}

	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}

	if q.CorrectAnswer == "" {
		return ErrEmptyQuestionAnswer
	}

	return nil
}
