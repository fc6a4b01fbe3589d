package attempts

import "errors"

// Common service errors
var (
	// ErrItemNotFound is returned when an attempt references a flashcard or
	// quiz question that does not exist. The attempt is rejected, never
	// silently recorded.
	ErrItemNotFound = errors.New("referenced item not found")

	// ErrInvalidItemType is returned when the item type is not flashcard or
	// quiz.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrNoValidAttempts is returned by the batch path when every record in
	// the batch failed the existence check.
	ErrNoValidAttempts = errors.New("no valid attempts in batch")
)
