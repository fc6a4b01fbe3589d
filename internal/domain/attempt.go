package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ItemType distinguishes the two practicable item kinds.
type ItemType string

// Possible item type values
const (
	ItemTypeFlashcard ItemType = "flashcard"
	ItemTypeQuiz      ItemType = "quiz"
)

// Validate checks that the item type is one of the known values.
func (t ItemType) Validate() error {
	switch t {
	case ItemTypeFlashcard, ItemTypeQuiz:
		return nil
	default:
		return ErrInvalidItemType
	}
}

// Common validation errors for Attempt
var (
	ErrEmptyAttemptUserID     = errors.New("attempt user ID cannot be empty")
	ErrEmptyAttemptItemID     = errors.New("attempt item ID cannot be empty")
	ErrEmptyAttemptCorrectAns = errors.New("attempt correct answer cannot be empty")
)

// Attempt records a single answer event in the append-only practice log.
// Attempts are immutable: they are inserted once and never updated or
// deleted by this subsystem.
type Attempt struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	ItemType      ItemType  `json:"item_type"`
	ItemID        uuid.UUID `json:"item_id"`
	Topic         string    `json:"topic"`
	UserAnswer    *string   `json:"user_answer"` // Nil for flashcard self-assessments
	CorrectAnswer string    `json:"correct_answer"`
	WasCorrect    bool      `json:"was_correct"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAttempt creates an attempt record. The caller is responsible for
// checking that ItemID references an existing item before persisting.
func NewAttempt(
	userID, projectID uuid.UUID,
	itemType ItemType,
	itemID uuid.UUID,
	topic string,
	userAnswer *string,
	correctAnswer string,
	wasCorrect bool,
) (*Attempt, error) {
	attempt := &Attempt{
		ID:            uuid.New(),
		UserID:        userID,
		ProjectID:     projectID,
		ItemType:      itemType,
		ItemID:        itemID,
		Topic:         topic,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		WasCorrect:    wasCorrect,
		CreatedAt:     time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the Attempt has valid data.
func (a *Attempt) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyAttemptUserID
	}

	if a.ItemID == uuid.Nil {
		return ErrEmptyAttemptItemID
	}

	if err := a.ItemType.Validate(); err != nil {
		return err
	}

	if a.CorrectAnswer == "" {
		return ErrEmptyAttemptCorrectAns
	}

	return nil
}
