package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/mocks"
	"github.com/studyloop/studyloop-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "learner@example.com"
	testPassword = "correct horse battery staple"
)

func newUserService(t *testing.T) (auth.UserService, *mocks.MemoryUserStore) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-with-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 7 * 24 * 60,
	})
	require.NoError(t, err)

	users := mocks.NewMemoryUserStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return auth.NewUserService(users, auth.NewBcryptHasher(bcrypt.MinCost), jwtService, log), users
}

func TestRegisterIssuesTokens(t *testing.T) {
	t.Parallel()
	service, users := newUserService(t)
	ctx := context.Background()

	user, pair, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	assert.Equal(t, testEmail, user.Email)
	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, testPassword, user.HashedPassword)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := users.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	_, _, err = service.Register(ctx, testEmail, "some other password!")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	// The email index is case insensitive.
	_, _, err = service.Register(ctx, "Learner@Example.com", "some other password!")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := service.Register(ctx, "not-an-email", testPassword)
	assert.Error(t, err)

	_, _, err = service.Register(ctx, testEmail, "short")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	registered, _, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	user, pair, err := service.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, _, err = service.Login(ctx, "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = service.Login(ctx, testEmail, "wrong password here")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	_, pair, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	fresh, err := service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)
	ctx := context.Background()

	_, pair, err := service.Register(ctx, testEmail, testPassword)
	require.NoError(t, err)

	_, err = service.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestRefreshGarbageToken(t *testing.T) {
	t.Parallel()
	service, _ := newUserService(t)

	_, err := service.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestRefreshDeletedUser(t *testing.T) {
	t.Parallel()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-with-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	users := mocks.NewMemoryUserStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewUserService(users, auth.NewBcryptHasher(bcrypt.MinCost), jwtService, log)

	// A structurally valid refresh token for a user the store has never seen.
	token, err := jwtService.GenerateRefreshToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}
