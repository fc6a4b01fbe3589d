package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
	"github.com/studyloop/studyloop-api/internal/service/attempts"
	"github.com/studyloop/studyloop-api/internal/service/auth"
	"github.com/studyloop/studyloop-api/internal/service/reviews"
	"github.com/studyloop/studyloop-api/internal/service/studycontent"
	"github.com/studyloop/studyloop-api/internal/service/usage"
	"github.com/studyloop/studyloop-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Quota errors are recoverable client errors, not failures
	case errors.Is(err, usage.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrGroupNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrReviewStateNotFound),
		errors.Is(err, reviews.ErrItemNotFound),
		errors.Is(err, reviews.ErrGroupNotFound),
		errors.Is(err, attempts.ErrItemNotFound),
		errors.Is(err, studycontent.ErrGroupNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, reviews.ErrInvalidQuality),
		errors.Is(err, usage.ErrInvalidCategory),
		errors.Is(err, attempts.ErrInvalidItemType),
		errors.Is(err, attempts.ErrNoValidAttempts),
		errors.Is(err, studycontent.ErrEmptySourceText):
		return http.StatusBadRequest

	// Upstream LLM failures
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	// Quota errors carry their own message with category and counts
	case errors.Is(err, usage.ErrQuotaExceeded):
		var quotaErr *usage.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return quotaErr.Error()
		}
		return "Daily usage limit reached"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrGroupNotFound),
		errors.Is(err, reviews.ErrGroupNotFound),
		errors.Is(err, studycontent.ErrGroupNotFound):
		return "Study group not found"

	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, reviews.ErrItemNotFound),
		errors.Is(err, attempts.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrReviewStateNotFound):
		return "Review state not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, auth.ErrEmailTaken):
		return "Email already exists"

	// Bad request errors
	case errors.Is(err, reviews.ErrInvalidQuality):
		return "Quality must be an integer between 0 and 5"

	case errors.Is(err, usage.ErrInvalidCategory):
		return "Unknown usage category"

	case errors.Is(err, attempts.ErrInvalidItemType):
		return "Item type must be flashcard or quiz"

	case errors.Is(err, attempts.ErrNoValidAttempts):
		return "No valid attempts in batch"

	case errors.Is(err, studycontent.ErrEmptySourceText):
		return "Source text cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	// Upstream LLM failures
	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by safety filters"

	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Content generation failed, please try again"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
