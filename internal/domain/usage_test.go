package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageCategoryValidate(t *testing.T) {
	t.Parallel()

	for _, category := range AllUsageCategories {
		assert.NoError(t, category.Validate())
	}

	for _, invalid := range []UsageCategory{"", "video_upload", "Chat_Message", "chat-message"} {
		assert.ErrorIs(t, invalid.Validate(), ErrInvalidUsageCategory, "category %q", invalid)
	}
}

func TestNewUsageCounters(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	counters, err := NewUsageCounters(userID, today)
	require.NoError(t, err)

	assert.Equal(t, userID, counters.UserID)
	assert.Equal(t, today, counters.LastResetDate)
	for _, category := range AllUsageCategories {
		assert.Zero(t, counters.CounterFor(category))
	}
}

func TestNewUsageCountersRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewUsageCounters(uuid.Nil, time.Now().UTC())
	assert.ErrorIs(t, err, ErrEmptyUsageUserID)

	_, err = NewUsageCounters(uuid.New(), time.Time{})
	assert.ErrorIs(t, err, ErrEmptyResetDate)
}

func TestCountersValidateRejectsNegative(t *testing.T) {
	t.Parallel()
	counters, err := NewUsageCounters(uuid.New(), time.Now().UTC())
	require.NoError(t, err)

	counters.QuizGensToday = -1
	assert.ErrorIs(t, counters.Validate(), ErrNegativeCounter)
}

func TestCountersAreIndependent(t *testing.T) {
	t.Parallel()
	counters, err := NewUsageCounters(uuid.New(), time.Now().UTC())
	require.NoError(t, err)

	counters.SetCounter(UsageCategoryChatMessage, 7)

	assert.Equal(t, 7, counters.CounterFor(UsageCategoryChatMessage))
	assert.Zero(t, counters.CounterFor(UsageCategoryFlashcardGeneration))
	assert.Zero(t, counters.CounterFor(UsageCategoryQuizGeneration))
	assert.Zero(t, counters.CounterFor(UsageCategoryDocumentUpload))
}

func TestCountersReset(t *testing.T) {
	t.Parallel()
	counters, err := NewUsageCounters(uuid.New(), time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	for _, category := range AllUsageCategories {
		counters.SetCounter(category, 5)
	}

	newDay := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	counters.Reset(newDay)

	assert.Equal(t, newDay, counters.LastResetDate)
	for _, category := range AllUsageCategories {
		assert.Zero(t, counters.CounterFor(category))
	}
}
