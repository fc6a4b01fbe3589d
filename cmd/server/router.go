package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/studyloop/studyloop-api/internal/api"
	apiMiddleware "github.com/studyloop/studyloop-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	reviewHandler := api.NewReviewHandler(app.reviewService)
	usageHandler := api.NewUsageHandler(app.limiter)
	attemptHandler := api.NewAttemptHandler(app.attemptService)
	generationHandler := api.NewGenerationHandler(app.contentService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Spaced repetition endpoints
			r.Post("/reviews", reviewHandler.RecordReview)
			r.Get("/groups/{groupID}/due", reviewHandler.GetDueItems)

			// Usage endpoints
			r.Get("/usage", usageHandler.GetUsage)

			// Practice log endpoints
			r.Post("/attempts", attemptHandler.CreateAttempt)
			r.Post("/attempts/batch", attemptHandler.CreateAttemptsBatch)
			r.Get("/attempts", attemptHandler.GetAttempts)

			// Generation endpoints
			r.Post("/generate/flashcards", generationHandler.GenerateFlashcards)
			r.Post("/generate/quiz", generationHandler.GenerateQuiz)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
