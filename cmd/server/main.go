// Package main implements the entry point for the StudyLoop API server,
// which schedules flashcard reviews with spaced repetition, enforces daily
// usage quotas and generates study content through an LLM.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if _, err := logger.Setup(cfg.Server.LogLevel); err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		log.Fatalf("server exited with error: %v", err)
	}
}
