package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	require.NotNil(t, service)

	impl, ok := service.(*defaultService)
	require.True(t, ok)
	require.NotNil(t, impl.params)
	assert.Equal(t, 1.3, impl.params.MinEaseFactor)
	assert.Equal(t, 3, impl.params.PassQuality)
}

func TestNextReviewRejectsNilState(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	_, err := service.NextReview(nil, 5, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilState)
}

func TestNextReviewRejectsOutOfRangeQuality(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	state := newTestState(t)

	for _, quality := range []int{-1, 6, 100} {
		_, err := service.NextReview(state, quality, time.Now().UTC())
		assert.ErrorIs(t, err, ErrInvalidQuality, "quality %d must be rejected, not clamped", quality)
	}
}

func TestNextReviewAcceptsBoundaryQualities(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Now().UTC()

	state := newTestState(t)

	lapsed, err := service.NextReview(state, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 0, lapsed.RepetitionCount)

	passed, err := service.NextReview(state, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 1, passed.RepetitionCount)
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()
	params := NewParams(ParamsConfig{FirstInterval: 2, SecondInterval: 10})
	service := NewServiceWithParams(params)
	now := time.Now().UTC()

	state := newTestState(t)

	first, err := service.NextReview(state, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 2, first.IntervalDays)

	second, err := service.NextReview(first, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 10, second.IntervalDays)
}
