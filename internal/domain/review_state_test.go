package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewState(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	state, err := NewReviewState(userID, itemID, uuid.New(), uuid.New(), now)
	require.NoError(t, err)

	assert.Equal(t, DefaultEaseFactor, state.EaseFactor)
	assert.Equal(t, InitialInterval, state.IntervalDays)
	assert.Zero(t, state.RepetitionCount)
	assert.Nil(t, state.LastReviewedAt)
	assert.Equal(t, now, state.NextReviewAt, "a fresh item is due immediately")
}

func TestNewReviewStateRequiresIDs(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	_, err := NewReviewState(uuid.Nil, uuid.New(), uuid.New(), uuid.New(), now)
	assert.ErrorIs(t, err, ErrEmptyReviewUserID)

	_, err = NewReviewState(uuid.New(), uuid.Nil, uuid.New(), uuid.New(), now)
	assert.ErrorIs(t, err, ErrEmptyReviewItemID)
}

func TestReviewStateValidate(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	testCases := []struct {
		name    string
		mutate  func(*ReviewState)
		wantErr error
	}{
		{name: "ease below floor", mutate: func(s *ReviewState) { s.EaseFactor = 1.29 }, wantErr: ErrInvalidEaseFactor},
		{name: "zero interval", mutate: func(s *ReviewState) { s.IntervalDays = 0 }, wantErr: ErrInvalidInterval},
		{name: "negative repetitions", mutate: func(s *ReviewState) { s.RepetitionCount = -1 }, wantErr: ErrInvalidRepetitions},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state, err := NewReviewState(uuid.New(), uuid.New(), uuid.New(), uuid.New(), now)
			require.NoError(t, err)

			tc.mutate(state)
			assert.ErrorIs(t, state.Validate(), tc.wantErr)
		})
	}
}

func TestValidQuality(t *testing.T) {
	t.Parallel()

	for q := MinQuality; q <= MaxQuality; q++ {
		assert.True(t, ValidQuality(q), "quality %d", q)
	}
	assert.False(t, ValidQuality(-1))
	assert.False(t, ValidQuality(6))
}
