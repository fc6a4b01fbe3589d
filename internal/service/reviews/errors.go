package reviews

import "errors"

// Common service errors
var (
	// ErrInvalidQuality is returned when a quality rating is outside the
	// 0-5 scale. Ratings are rejected, never clamped.
	ErrInvalidQuality = errors.New("quality rating must be an integer between 0 and 5")

	// ErrItemNotFound is returned when the practiced flashcard does not
	// exist in the item store.
	ErrItemNotFound = errors.New("item not found")

	// ErrGroupNotFound is returned when the referenced study group does not
	// exist.
	ErrGroupNotFound = errors.New("study group not found")
)
