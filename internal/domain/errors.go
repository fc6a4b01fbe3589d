// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidQuality is returned when a review quality rating is outside
	// the 0-5 scale. Out-of-range ratings are rejected, never clamped.
	ErrInvalidQuality = errors.New("quality rating must be an integer between 0 and 5")

	// ErrInvalidUsageCategory is returned when a usage category does not name
	// one of the four gated operation types.
	ErrInvalidUsageCategory = errors.New("invalid usage category")

	// ErrInvalidItemType is returned when an attempt references an item type
	// other than flashcard or quiz.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
