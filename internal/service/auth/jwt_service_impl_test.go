package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/config"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:                   "test-secret-key-with-at-least-32-chars",
	TokenLifetimeMinutes:        60,
	RefreshTokenLifetimeMinutes: 7 * 24 * 60,
}

// newTestJWTService returns a service pinned to a fixed clock so expiry tests
// are deterministic.
func newTestJWTService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig)
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "too-short",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenTypeRefresh, claims.TokenType)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Past the lifetime plus the clock skew allowance.
	svc.timeFunc = func() time.Time { return issued.Add(time.Hour + 3*time.Minute) }

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// One minute past expiry is still inside the two-minute skew window.
	svc.timeFunc = func() time.Time { return issued.Add(time.Hour + time.Minute) }

	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateTokenWrongType(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	// A refresh token must not pass access validation or vice versa.
	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenTamperedSignature(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenSignedWithDifferentKey(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "another-secret-key-with-32-characters!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	ctx := context.Background()
	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()
	svc := newTestJWTService(t, time.Now())
	ctx := context.Background()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestExpiredRefreshTokenSentinel(t *testing.T) {
	t.Parallel()
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.timeFunc = func() time.Time {
		return issued.Add(time.Duration(testAuthConfig.RefreshTokenLifetimeMinutes)*time.Minute + 3*time.Minute)
	}

	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}
