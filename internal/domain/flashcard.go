package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Flashcard
var (
	ErrEmptyCardUserID = errors.New("flashcard user ID cannot be empty")
	ErrEmptyCardFront  = errors.New("flashcard front cannot be empty")
	ErrEmptyCardBack   = errors.New("flashcard back cannot be empty")
)

// Flashcard is a single front/back study card, generated from course
// documents or created manually. Flashcards are the items the spaced
// repetition engine schedules.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	GroupID   uuid.UUID `json:"group_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Topic     string    `json:"topic"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcard creates a flashcard with a generated ID and timestamps.
// Returns an error if validation fails.
func NewFlashcard(userID, groupID, projectID uuid.UUID, topic, front, back string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:        uuid.New(),
		UserID:    userID,
		GroupID:   groupID,
		ProjectID: projectID,
		Topic:     topic,
		Front:     front,
		Back:      back,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (c *Flashcard) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrEmptyCardUserID
	}

	if c.Front == "" {
		return ErrEmptyCardFront
	}

	if c.Back == "" {
		return ErrEmptyCardBack
	}

	return nil
}
