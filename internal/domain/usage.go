package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UsageCategory identifies one of the four daily-limited operation types.
// The set is closed: every switch over it handles exactly these four values,
// so an unknown category can only enter the system through an unvalidated
// string at the API edge, where Validate rejects it.
type UsageCategory string

// The four gated operation categories.
const (
	UsageCategoryChatMessage         UsageCategory = "chat_message"
	UsageCategoryFlashcardGeneration UsageCategory = "flashcard_generation"
	UsageCategoryQuizGeneration      UsageCategory = "quiz_generation"
	UsageCategoryDocumentUpload      UsageCategory = "document_upload"
)

// AllUsageCategories lists every category in a stable order, used when
// building snapshots and resetting counters.
var AllUsageCategories = []UsageCategory{
	UsageCategoryChatMessage,
	UsageCategoryFlashcardGeneration,
	UsageCategoryQuizGeneration,
	UsageCategoryDocumentUpload,
}

// Validate checks that the category is one of the four known values.
func (c UsageCategory) Validate() error {
	switch c {
	case UsageCategoryChatMessage,
		UsageCategoryFlashcardGeneration,
		UsageCategoryQuizGeneration,
		UsageCategoryDocumentUpload:
		return nil
	default:
		return ErrInvalidUsageCategory
	}
}

// Common validation errors for UsageCounters
var (
	ErrEmptyUsageUserID  = errors.New("usage counters user ID cannot be empty")
	ErrNegativeCounter   = errors.New("usage counters cannot be negative")
	ErrEmptyResetDate    = errors.New("usage counters last reset date cannot be zero")
	ErrUnknownUsageField = errors.New("no counter exists for category")
)

// UsageCounters holds a user's daily consumption of the four gated operation
// types. One permanent row exists per user; the values cycle on UTC day
// rollover but the row itself is never deleted.
type UsageCounters struct {
	UserID               uuid.UUID `json:"user_id"`
	ChatMessagesToday    int       `json:"chat_messages_today"`
	FlashcardGensToday   int       `json:"flashcard_generations_today"`
	QuizGensToday        int       `json:"quiz_generations_today"`
	DocumentUploadsToday int       `json:"document_uploads_today"`
	LastResetDate        time.Time `json:"last_reset_date"` // UTC midnight of the last reset day
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewUsageCounters creates a zeroed counters record for a user, dated today.
func NewUsageCounters(userID uuid.UUID, today time.Time) (*UsageCounters, error) {
	now := time.Now().UTC()
	counters := &UsageCounters{
		UserID:        userID,
		LastResetDate: today,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := counters.Validate(); err != nil {
		return nil, err
	}

	return counters, nil
}

// Validate checks if the UsageCounters has valid data.
func (u *UsageCounters) Validate() error {
	if u.UserID == uuid.Nil {
		return ErrEmptyUsageUserID
	}

	if u.ChatMessagesToday < 0 || u.FlashcardGensToday < 0 ||
		u.QuizGensToday < 0 || u.DocumentUploadsToday < 0 {
		return ErrNegativeCounter
	}

	if u.LastResetDate.IsZero() {
		return ErrEmptyResetDate
	}

	return nil
}

// CounterFor returns the current count for the given category.
func (u *UsageCounters) CounterFor(category UsageCategory) int {
	switch category {
	case UsageCategoryChatMessage:
		return u.ChatMessagesToday
	case UsageCategoryFlashcardGeneration:
		return u.FlashcardGensToday
	case UsageCategoryQuizGeneration:
		return u.QuizGensToday
	case UsageCategoryDocumentUpload:
		return u.DocumentUploadsToday
	default:
		// Unreachable for validated categories.
		return 0
	}
}

// SetCounter sets the count for the given category.
func (u *UsageCounters) SetCounter(category UsageCategory, count int) {
	switch category {
	case UsageCategoryChatMessage:
		u.ChatMessagesToday = count
	case UsageCategoryFlashcardGeneration:
		u.FlashcardGensToday = count
	case UsageCategoryQuizGeneration:
		u.QuizGensToday = count
	case UsageCategoryDocumentUpload:
		u.DocumentUploadsToday = count
	}
}

// Reset zeroes all four counters and stamps the record with the new reset day.
func (u *UsageCounters) Reset(today time.Time) {
	u.ChatMessagesToday = 0
	u.FlashcardGensToday = 0
	u.QuizGensToday = 0
	u.DocumentUploadsToday = 0
	u.LastResetDate = today
}

// CategoryUsage is one category's slice of a UsageSnapshot.
type CategoryUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// UsageSnapshot reports a user's current consumption against the configured
// limits for all four categories.
type UsageSnapshot struct {
	UserID     uuid.UUID                       `json:"user_id"`
	Categories map[UsageCategory]CategoryUsage `json:"categories"`
	AsOf       time.Time                       `json:"as_of"`
}
