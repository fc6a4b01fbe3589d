package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// TokenPair is an access/refresh token pair issued after registration,
// login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService defines the registration and login operations.
type UserService interface {
	// Register creates a user with a hashed password and issues tokens.
	// Returns ErrEmailTaken if the email is already registered.
	Register(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)

	// Login verifies the credentials and issues tokens. Returns
	// ErrInvalidCredentials on unknown email or wrong password, never
	// revealing which.
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)

	// Refresh validates a refresh token and issues a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// Verify interface compliance at compile time
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens JWTService
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	hasher PasswordHasher,
	tokens JWTService,
	log *slog.Logger,
) UserService {
	if users == nil {
		panic("users cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if tokens == nil {
		panic("tokens cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: log.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(
	ctx context.Context,
	email, password string,
) (*domain.User, *TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, nil, ErrEmailTaken
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, pair, nil
}

// Login implements UserService.Login.
func (s *userServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, *TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh implements UserService.Refresh.
func (s *userServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// Confirm the user still exists before minting new tokens.
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(ctx, claims.UserID)
}

func (s *userServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
