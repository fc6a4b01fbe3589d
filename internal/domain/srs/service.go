// Package srs implements the spaced repetition scheduling algorithm, an
// SM-2 derivative driven by 0-5 quality ratings. The package is pure: it
// computes new review states from old ones and never touches storage.
package srs

import (
	"errors"
	"time"

	"github.com/studyloop/studyloop-api/internal/domain"
)

// Common errors
var (
	ErrNilState       = errors.New("review state cannot be nil")
	ErrInvalidQuality = errors.New("quality rating must be an integer between 0 and 5")
)

// Service defines the interface for SRS algorithm operations.
type Service interface {
	// NextReview computes new review state based on a 0-5 quality rating.
	// It returns a new ReviewState and never modifies the input.
	// Quality ratings outside [0, 5] are rejected, not clamped.
	NextReview(
		state *domain.ReviewState,
		quality int,
		now time.Time,
	) (*domain.ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// NextReview implements the Service interface.
func (s *defaultService) NextReview(
	state *domain.ReviewState,
	quality int,
	now time.Time,
) (*domain.ReviewState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if !domain.ValidQuality(quality) {
		return nil, ErrInvalidQuality
	}

	return nextState(state, quality, now, s.params), nil
}
