// Package usage implements the daily usage limiter that gates expensive
// generation operations per user. Counters reset lazily on UTC day rollover;
// the check-and-increment sequence is atomic per user, so the last free slot
// can never be spent twice.
package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// Limiter defines the usage limiting operations.
type Limiter interface {
	// CheckAndIncrement consumes one unit of the user's daily quota for the
	// category. It lazily creates the counters row, performs the day
	// rollover reset if needed, and fails with a *QuotaExceededError (no
	// increment) when the counter has reached its limit. The whole sequence
	// runs in one transaction over a row-level lock.
	CheckAndIncrement(ctx context.Context, userID uuid.UUID, category domain.UsageCategory) error

	// GetUsage reports the user's current consumption against the
	// configured limits for all four categories. The read path performs the
	// same lazy-init and rollover self-heal as CheckAndIncrement.
	GetUsage(ctx context.Context, userID uuid.UUID) (*domain.UsageSnapshot, error)
}

// Verify interface compliance at compile time
var _ Limiter = (*limiterImpl)(nil)

// limiterImpl implements the Limiter interface.
type limiterImpl struct {
	db       *sql.DB
	counters store.UsageCounterStore
	clock    store.Clock
	limits   config.UsageLimitsConfig
	logger   *slog.Logger
}

// NewLimiter creates a new usage Limiter.
func NewLimiter(
	db *sql.DB,
	counters store.UsageCounterStore,
	clock store.Clock,
	limits config.UsageLimitsConfig,
	log *slog.Logger,
) Limiter {
	if db == nil {
		panic("db cannot be nil")
	}
	if counters == nil {
		panic("counters cannot be nil")
	}
	if clock == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &limiterImpl{
		db:       db,
		counters: counters,
		clock:    clock,
		limits:   limits,
		logger:   log.With(slog.String("component", "usage_limiter")),
	}
}

// CheckAndIncrement implements Limiter.CheckAndIncrement.
func (s *limiterImpl) CheckAndIncrement(
	ctx context.Context,
	userID uuid.UUID,
	category domain.UsageCategory,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		counters := s.counters.WithTx(tx)

		row, err := s.lockOrCreate(ctx, counters, userID)
		if err != nil {
			return err
		}

		today := s.clock.Today()
		if today.After(row.LastResetDate) {
			// Rollover happens-before the limit check, inside the same
			// transaction, so any concurrent caller observes reset and
			// increment as one operation.
			row.Reset(today)
			log.Debug("reset daily usage counters",
				slog.String("user_id", userID.String()),
				slog.Time("reset_date", today))
		}

		used := row.CounterFor(category)
		limit := s.limits.LimitFor(category)
		if used >= limit {
			return &QuotaExceededError{Category: category, Used: used, Limit: limit}
		}

		row.SetCounter(category, used+1)
		row.UpdatedAt = s.clock.Now()

		return counters.Update(ctx, row)
	})

	if err != nil {
		var quotaErr *QuotaExceededError
		if errors.As(err, &quotaErr) {
			log.Debug("quota exceeded",
				slog.String("user_id", userID.String()),
				slog.String("category", string(quotaErr.Category)),
				slog.Int("used", quotaErr.Used),
				slog.Int("limit", quotaErr.Limit))
			return err
		}

		log.Error("failed to check and increment usage",
			slog.String("user_id", userID.String()),
			slog.String("category", string(category)),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to check and increment usage: %w", err)
	}

	return nil
}

// GetUsage implements Limiter.GetUsage.
func (s *limiterImpl) GetUsage(ctx context.Context, userID uuid.UUID) (*domain.UsageSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var snapshot *domain.UsageSnapshot
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		counters := s.counters.WithTx(tx)

		row, err := s.lockOrCreate(ctx, counters, userID)
		if err != nil {
			return err
		}

		// The read path also self-heals a stale record so a user who only
		// checks their usage sees fresh counters after midnight.
		today := s.clock.Today()
		if today.After(row.LastResetDate) {
			row.Reset(today)
			row.UpdatedAt = s.clock.Now()
			if err := counters.Update(ctx, row); err != nil {
				return err
			}
		}

		categories := make(map[domain.UsageCategory]domain.CategoryUsage, len(domain.AllUsageCategories))
		for _, category := range domain.AllUsageCategories {
			categories[category] = domain.CategoryUsage{
				Used:  row.CounterFor(category),
				Limit: s.limits.LimitFor(category),
			}
		}

		snapshot = &domain.UsageSnapshot{
			UserID:     userID,
			Categories: categories,
			AsOf:       s.clock.Now(),
		}
		return nil
	})

	if err != nil {
		log.Error("failed to get usage",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}

	return snapshot, nil
}

// lockOrCreate fetches the user's counters row under a row-level lock,
// lazily creating it on first use. A concurrent first use loses the insert
// race with a duplicate error and falls back to locking the winner's row.
func (s *limiterImpl) lockOrCreate(
	ctx context.Context,
	counters store.UsageCounterStore,
	userID uuid.UUID,
) (*domain.UsageCounters, error) {
	row, err := counters.GetForUpdate(ctx, userID)
	if err == nil {
		return row, nil
	}

	if !errors.Is(err, store.ErrUsageCountersNotFound) {
		return nil, err
	}

	fresh, err := domain.NewUsageCounters(userID, s.clock.Today())
	if err != nil {
		return nil, err
	}

	if err := counters.Create(ctx, fresh); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return counters.GetForUpdate(ctx, userID)
		}
		return nil, err
	}

	// The insert is part of this transaction, so the new row is already
	// exclusively ours until commit.
	return fresh, nil
}
