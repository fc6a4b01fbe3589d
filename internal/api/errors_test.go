package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/api"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
	"github.com/studyloop/studyloop-api/internal/service/attempts"
	"github.com/studyloop/studyloop-api/internal/service/auth"
	"github.com/studyloop/studyloop-api/internal/service/reviews"
	"github.com/studyloop/studyloop-api/internal/service/studycontent"
	"github.com/studyloop/studyloop-api/internal/service/usage"
	"github.com/studyloop/studyloop-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "quota sentinel", err: usage.ErrQuotaExceeded, want: http.StatusTooManyRequests},
		{
			name: "quota error with counters",
			err: &usage.QuotaExceededError{
				Category: domain.UsageCategoryChatMessage, Used: 5, Limit: 5,
			},
			want: http.StatusTooManyRequests,
		},
		{
			name: "wrapped quota error",
			err: fmt.Errorf("generate flashcards: %w", &usage.QuotaExceededError{
				Category: domain.UsageCategoryFlashcardGeneration, Used: 3, Limit: 3,
			}),
			want: http.StatusTooManyRequests,
		},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "group not found", err: reviews.ErrGroupNotFound, want: http.StatusNotFound},
		{name: "item not found", err: attempts.ErrItemNotFound, want: http.StatusNotFound},
		{name: "missing generation group", err: studycontent.ErrGroupNotFound, want: http.StatusNotFound},
		{name: "email exists", err: auth.ErrEmailTaken, want: http.StatusConflict},
		{name: "invalid quality", err: reviews.ErrInvalidQuality, want: http.StatusBadRequest},
		{name: "invalid category", err: usage.ErrInvalidCategory, want: http.StatusBadRequest},
		{name: "invalid item type", err: attempts.ErrInvalidItemType, want: http.StatusBadRequest},
		{name: "empty batch", err: attempts.ErrNoValidAttempts, want: http.StatusBadRequest},
		{name: "empty source text", err: studycontent.ErrEmptySourceText, want: http.StatusBadRequest},
		{name: "content blocked", err: generation.ErrContentBlocked, want: http.StatusUnprocessableEntity},
		{name: "transient llm failure", err: generation.ErrTransientFailure, want: http.StatusBadGateway},
		{name: "unknown error", err: errors.New("database on fire"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageQuota(t *testing.T) {
	t.Parallel()

	quotaErr := &usage.QuotaExceededError{
		Category: domain.UsageCategoryQuizGeneration,
		Used:     2,
		Limit:    2,
	}

	// Quota rejections surface their own message with category and counts.
	msg := api.GetSafeErrorMessage(quotaErr)
	assert.Contains(t, msg, "quiz_generation")
	assert.Contains(t, msg, "2/2")
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection refused host=db.internal port=5432")
	msg := api.GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "db.internal")
}

func TestGetSafeErrorMessageNilError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(api.RegisterRequest{Password: "long enough password"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Email: required field", api.SanitizeValidationError(err))

	err = shared.ValidateRequest(api.RegisterRequest{Email: "a@b.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Password: too short", api.SanitizeValidationError(err))

	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("boom")))
}
