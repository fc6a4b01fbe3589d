package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Spaced repetition defaults. A fresh item starts at the neutral SM-2 ease
// factor and the shortest interval.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	InitialInterval   = 1

	// PassQuality is the lowest quality rating that counts as a successful
	// recall. Ratings below it reset the schedule.
	PassQuality = 3

	// MinQuality and MaxQuality bound the 0-5 self-assessment scale.
	MinQuality = 0
	MaxQuality = 5
)

// Common validation errors for ReviewState
var (
	ErrEmptyReviewUserID  = errors.New("review state user ID cannot be empty")
	ErrEmptyReviewItemID  = errors.New("review state item ID cannot be empty")
	ErrInvalidInterval    = errors.New("interval must be at least 1 day")
	ErrInvalidEaseFactor  = errors.New("ease factor must be at least 1.3")
	ErrInvalidRepetitions = errors.New("repetition count cannot be negative")
)

// ReviewState tracks a user's spaced repetition schedule for a single
// flashcard. One row exists per (user, item) pair, created lazily on first
// practice and mutated on every review after that.
type ReviewState struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	ItemID          uuid.UUID  `json:"item_id"`
	GroupID         uuid.UUID  `json:"group_id"`
	ProjectID       uuid.UUID  `json:"project_id"`
	EaseFactor      float64    `json:"ease_factor"`      // Governs interval growth, floor 1.3
	IntervalDays    int        `json:"interval_days"`    // Days until the next review
	RepetitionCount int        `json:"repetition_count"` // Consecutive successful reviews
	LastReviewedAt  *time.Time `json:"last_reviewed_at"` // Nil until the first review
	NextReviewAt    time.Time  `json:"next_review_at"`   // When the item becomes due
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewReviewState creates schedule state for a (user, item) pair with default
// values. The item is due immediately so a freshly practiced card can be
// reviewed the same session.
func NewReviewState(userID, itemID, groupID, projectID uuid.UUID, now time.Time) (*ReviewState, error) {
	state := &ReviewState{
		ID:              uuid.New(),
		UserID:          userID,
		ItemID:          itemID,
		GroupID:         groupID,
		ProjectID:       projectID,
		EaseFactor:      DefaultEaseFactor,
		IntervalDays:    InitialInterval,
		RepetitionCount: 0,
		LastReviewedAt:  nil,
		NextReviewAt:    now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the ReviewState has valid data.
// Returns an error if any field fails validation.
func (s *ReviewState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	if s.ItemID == uuid.Nil {
		return ErrEmptyReviewItemID
	}

	if s.IntervalDays < 1 {
		return ErrInvalidInterval
	}

	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if s.RepetitionCount < 0 {
		return ErrInvalidRepetitions
	}

	return nil
}

// ValidQuality reports whether q is a usable 0-5 quality rating.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}
