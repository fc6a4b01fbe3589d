package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assert.Equal(t, 1.3, params.MinEaseFactor)
	assert.Equal(t, 3, params.PassQuality)
	assert.Equal(t, 1, params.FirstInterval)
	assert.Equal(t, 6, params.SecondInterval)
	assert.Equal(t, 365, params.MaxIntervalDays)
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()
	params := NewParams(ParamsConfig{
		MinEaseFactor: 1.5,
		FirstInterval: 3,
	})

	assert.Equal(t, 1.5, params.MinEaseFactor)
	assert.Equal(t, 3, params.FirstInterval)
	// Unset fields keep their defaults.
	assert.Equal(t, 3, params.PassQuality)
	assert.Equal(t, 6, params.SecondInterval)
}
