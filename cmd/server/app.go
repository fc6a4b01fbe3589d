package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/domain/srs"
	"github.com/studyloop/studyloop-api/internal/platform/gemini"
	"github.com/studyloop/studyloop-api/internal/platform/postgres"
	"github.com/studyloop/studyloop-api/internal/service/attempts"
	"github.com/studyloop/studyloop-api/internal/service/auth"
	"github.com/studyloop/studyloop-api/internal/service/reviews"
	"github.com/studyloop/studyloop-api/internal/service/studycontent"
	"github.com/studyloop/studyloop-api/internal/service/usage"
	"github.com/studyloop/studyloop-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	userService    auth.UserService
	reviewService  reviews.Service
	attemptService attempts.Service
	limiter        usage.Limiter
	contentService studycontent.Service
}

// newApplication connects the database, runs migrations and wires every
// store and service.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	logger := slog.Default()

	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, cfg, logger); err != nil {
		return nil, err
	}

	// Stores
	userStore := postgres.NewPostgresUserStore(db, logger)
	groupStore := postgres.NewPostgresStudyGroupStore(db, logger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, logger)
	quizStore := postgres.NewPostgresQuizQuestionStore(db, logger)
	reviewStateStore := postgres.NewPostgresReviewStateStore(db, logger)
	usageStore := postgres.NewPostgresUsageCounterStore(db, logger)
	attemptStore := postgres.NewPostgresAttemptStore(db, logger)

	clock := store.NewSystemClock()

	// Auth
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	userService := auth.NewUserService(userStore, auth.NewBcryptHasher(0), jwtService, logger)

	// Core services
	limiter := usage.NewLimiter(db, usageStore, clock, cfg.UsageLimits, logger)
	reviewService := reviews.NewService(
		db, reviewStateStore, flashcardStore, groupStore, srs.NewDefaultService(), clock, logger)
	attemptService := attempts.NewService(db, attemptStore, flashcardStore, quizStore, logger)

	// Generation
	generator, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini generator: %w", err)
	}
	contentService := studycontent.NewService(
		db, generator, limiter, groupStore, flashcardStore, quizStore, logger)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		jwtService:     jwtService,
		userService:    userService,
		reviewService:  reviewService,
		attemptService: attemptService,
		limiter:        limiter,
		contentService: contentService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
