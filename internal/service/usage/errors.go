package usage

import (
	"errors"
	"fmt"

	"github.com/studyloop/studyloop-api/internal/domain"
)

// Common service errors
var (
	// ErrQuotaExceeded is the sentinel all QuotaExceededError values unwrap
	// to, so callers can use errors.Is without caring about the category.
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrInvalidCategory is returned when a category fails validation at
	// the service boundary.
	ErrInvalidCategory = errors.New("invalid usage category")
)

// QuotaExceededError reports that a user has consumed their daily quota for
// one category. It is a recoverable, user-facing condition, not a system
// error: callers surface it verbatim ("come back tomorrow"), never retry it.
type QuotaExceededError struct {
	Category domain.UsageCategory
	Used     int
	Limit    int
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded for %s: %d/%d used", e.Category, e.Used, e.Limit)
}

// Unwrap lets errors.Is(err, ErrQuotaExceeded) match any category's error.
func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}
