package srs

import (
	"math"
	"time"

	"github.com/studyloop/studyloop-api/internal/domain"
)

// nextEaseFactor computes the adjusted ease factor for a successful review.
//
// The adjustment is the standard SM-2 quadratic in (5 - quality):
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// A quality of 5 raises the ease factor by 0.1, a quality of 4 leaves it
// unchanged, and a quality of 3 lowers it by 0.14. The result is clamped at
// params.MinEaseFactor so intervals never shrink below a minimum growth rate.
//
// The ease factor is only adjusted on successful reviews; a lapse resets the
// schedule but leaves the ease factor alone, matching the original SM-2
// behavior where difficulty is relearned through subsequent ratings.
func nextEaseFactor(currentEF float64, quality int, params *Params) float64 {
	missed := float64(5 - quality)
	newEF := currentEF + (0.1 - missed*(0.08+missed*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// nextInterval computes the interval in days to the next review of an item
// that was just answered successfully.
//
// The ladder is: first successful review -> FirstInterval (1 day), second
// consecutive success -> SecondInterval (6 days), after that the interval
// grows multiplicatively by the ease factor. The multiplication uses the
// pre-update ease factor, so the rating's effect on ease is felt one review
// later than its effect on the interval.
//
// The product is rounded to the nearest whole day. Truncation was considered
// and rejected: it systematically shortens long intervals, which compounds
// over many reviews.
func nextInterval(currentInterval, repetitionCount int, easeFactor float64, params *Params) int {
	var interval int
	switch repetitionCount {
	case 0:
		interval = params.FirstInterval
	case 1:
		interval = params.SecondInterval
	default:
		interval = int(math.Round(float64(currentInterval) * easeFactor))
	}

	if params.MaxIntervalDays > 0 && interval > params.MaxIntervalDays {
		interval = params.MaxIntervalDays
	}

	return interval
}

// nextState computes the review state after a quality rating, following the
// immutable update pattern: the input state is never modified and a fully
// populated copy is returned.
//
// The caller must have validated quality against the 0-5 scale already;
// nextState assumes it is in range.
func nextState(state *domain.ReviewState, quality int, now time.Time, params *Params) *domain.ReviewState {
	newState := &domain.ReviewState{
		ID:              state.ID,
		UserID:          state.UserID,
		ItemID:          state.ItemID,
		GroupID:         state.GroupID,
		ProjectID:       state.ProjectID,
		EaseFactor:      state.EaseFactor,
		IntervalDays:    state.IntervalDays,
		RepetitionCount: state.RepetitionCount,
		LastReviewedAt:  state.LastReviewedAt,
		NextReviewAt:    state.NextReviewAt,
		CreatedAt:       state.CreatedAt,
		UpdatedAt:       state.UpdatedAt,
	}

	if quality < params.PassQuality {
		// A lapse restarts the schedule from the shortest interval.
		newState.RepetitionCount = 0
		newState.IntervalDays = params.FirstInterval
	} else {
		newState.IntervalDays = nextInterval(
			state.IntervalDays,
			state.RepetitionCount,
			state.EaseFactor,
			params,
		)
		newState.EaseFactor = nextEaseFactor(state.EaseFactor, quality, params)
		newState.RepetitionCount = state.RepetitionCount + 1
	}

	reviewedAt := now
	newState.LastReviewedAt = &reviewedAt
	newState.NextReviewAt = now.AddDate(0, 0, newState.IntervalDays)
	newState.UpdatedAt = now

	return newState
}
