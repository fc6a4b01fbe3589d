package usage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/mocks"
	"github.com/studyloop/studyloop-api/internal/service/usage"
)

var testLimits = config.UsageLimitsConfig{
	ChatMessagesPerDay:         5,
	FlashcardGenerationsPerDay: 3,
	QuizGenerationsPerDay:      2,
	DocumentUploadsPerDay:      1,
}

func newTestLimiter(t *testing.T) (usage.Limiter, *mocks.MemoryUsageCounterStore, *mocks.FakeClock) {
	t.Helper()

	db := mocks.NewStubDB()
	t.Cleanup(func() { _ = db.Close() })

	counters := mocks.NewMemoryUsageCounterStore()
	clock := mocks.NewFakeClock(time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return usage.NewLimiter(db, counters, clock, testLimits, log), counters, clock
}

func TestCheckAndIncrementConsumesQuota(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < testLimits.FlashcardGenerationsPerDay; i++ {
		require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryFlashcardGeneration),
			"call %d should be within quota", i+1)
	}

	err := limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryFlashcardGeneration)
	require.Error(t, err)
	assert.ErrorIs(t, err, usage.ErrQuotaExceeded)

	var quotaErr *usage.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, domain.UsageCategoryFlashcardGeneration, quotaErr.Category)
	assert.Equal(t, testLimits.FlashcardGenerationsPerDay, quotaErr.Used)
	assert.Equal(t, testLimits.FlashcardGenerationsPerDay, quotaErr.Limit)
}

func TestCheckAndIncrementRejectedCallDoesNotIncrement(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload))

	// Hammer the exhausted category; the counter must not creep past the limit.
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload),
			usage.ErrQuotaExceeded)
	}

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, testLimits.DocumentUploadsPerDay, snapshot.Categories[domain.UsageCategoryDocumentUpload].Used)
}

func TestCategoriesAreIndependent(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < testLimits.QuizGenerationsPerDay; i++ {
		require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryQuizGeneration))
	}
	require.ErrorIs(t,
		limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryQuizGeneration),
		usage.ErrQuotaExceeded)

	// An exhausted quiz quota must not touch the other categories.
	assert.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))
	assert.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryFlashcardGeneration))
	assert.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload))
}

func TestUsersAreIndependent(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()
	firstUser := uuid.New()
	secondUser := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, firstUser, domain.UsageCategoryDocumentUpload))
	require.ErrorIs(t,
		limiter.CheckAndIncrement(ctx, firstUser, domain.UsageCategoryDocumentUpload),
		usage.ErrQuotaExceeded)

	assert.NoError(t, limiter.CheckAndIncrement(ctx, secondUser, domain.UsageCategoryDocumentUpload))
}

func TestDayRolloverResetsCounters(t *testing.T) {
	t.Parallel()
	limiter, counters, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload))
	require.ErrorIs(t,
		limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload),
		usage.ErrQuotaExceeded)

	// Cross UTC midnight; the stale counters reset before the limit check.
	clock.Advance(24 * time.Hour)

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload))

	row, err := counters.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, clock.Today(), row.LastResetDate)
	assert.Equal(t, 1, row.DocumentUploadsToday)
}

func TestRolloverClearsAllCategories(t *testing.T) {
	t.Parallel()
	limiter, _, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, category := range domain.AllUsageCategories {
		require.NoError(t, limiter.CheckAndIncrement(ctx, userID, category))
	}

	clock.Advance(24 * time.Hour)

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)
	for _, category := range domain.AllUsageCategories {
		assert.Zero(t, snapshot.Categories[category].Used, "category %s", category)
	}
}

func TestSameDayDoesNotReset(t *testing.T) {
	t.Parallel()
	limiter, _, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))

	// Later the same UTC day, not past midnight.
	clock.Advance(3 * time.Hour)

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Categories[domain.UsageCategoryChatMessage].Used)
}

func TestCheckAndIncrementLazilyCreatesCounters(t *testing.T) {
	t.Parallel()
	limiter, counters, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := counters.Get(ctx, userID)
	require.Error(t, err)

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))

	row, err := counters.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.ChatMessagesToday)
	assert.Equal(t, clock.Today(), row.LastResetDate)
}

func TestCheckAndIncrementInvalidCategory(t *testing.T) {
	t.Parallel()
	limiter, counters, _ := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	err := limiter.CheckAndIncrement(ctx, userID, "essay_grading")
	assert.ErrorIs(t, err, usage.ErrInvalidCategory)

	// The rejected call must not create a row.
	_, err = counters.Get(ctx, userID)
	assert.Error(t, err)
}

func TestGetUsageReportsAllCategories(t *testing.T) {
	t.Parallel()
	limiter, _, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))
	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))
	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryQuizGeneration))

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, userID, snapshot.UserID)
	assert.Equal(t, clock.Now(), snapshot.AsOf)
	assert.Len(t, snapshot.Categories, len(domain.AllUsageCategories))

	assert.Equal(t, domain.CategoryUsage{Used: 2, Limit: 5}, snapshot.Categories[domain.UsageCategoryChatMessage])
	assert.Equal(t, domain.CategoryUsage{Used: 0, Limit: 3}, snapshot.Categories[domain.UsageCategoryFlashcardGeneration])
	assert.Equal(t, domain.CategoryUsage{Used: 1, Limit: 2}, snapshot.Categories[domain.UsageCategoryQuizGeneration])
	assert.Equal(t, domain.CategoryUsage{Used: 0, Limit: 1}, snapshot.Categories[domain.UsageCategoryDocumentUpload])
}

func TestGetUsageForNewUserShowsZeros(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()

	snapshot, err := limiter.GetUsage(ctx, uuid.New())
	require.NoError(t, err)

	for _, category := range domain.AllUsageCategories {
		got := snapshot.Categories[category]
		assert.Zero(t, got.Used, "category %s", category)
		assert.Equal(t, testLimits.LimitFor(category), got.Limit, "category %s", category)
	}
}

func TestGetUsageSelfHealsStaleCounters(t *testing.T) {
	t.Parallel()
	limiter, counters, clock := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryChatMessage))

	clock.Advance(48 * time.Hour)

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, snapshot.Categories[domain.UsageCategoryChatMessage].Used)

	// The reset is persisted, not just reflected in the snapshot.
	row, err := counters.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, row.ChatMessagesToday)
	assert.Equal(t, clock.Today(), row.LastResetDate)
}

// TestConcurrentLastSlot races two callers for the last remaining unit of a
// quota. The transactional row lock must let exactly one of them through.
func TestConcurrentLastSlot(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newTestLimiter(t)
	ctx := context.Background()
	userID := uuid.New()

	// Document uploads allow a single unit per day, so both contenders
	// race for the same slot.
	require.Equal(t, 1, testLimits.DocumentUploadsPerDay)

	const contenders = 2
	errs := make(chan error, contenders)

	var start sync.WaitGroup
	start.Add(1)

	var done sync.WaitGroup
	for i := 0; i < contenders; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			errs <- limiter.CheckAndIncrement(ctx, userID, domain.UsageCategoryDocumentUpload)
		}()
	}

	start.Done()
	done.Wait()
	close(errs)

	var successes, rejections int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, usage.ErrQuotaExceeded):
			rejections++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one contender may take the last slot")
	assert.Equal(t, contenders-1, rejections)

	snapshot, err := limiter.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Categories[domain.UsageCategoryDocumentUpload].Used)
}
