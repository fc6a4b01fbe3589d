package config

import "github.com/studyloop/studyloop-api/internal/domain"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"       validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"     validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"         validate:"required"`
	LLM         LLMConfig         `mapstructure:"llm"          validate:"required"`
	UsageLimits UsageLimitsConfig `mapstructure:"usage_limits" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL           string `mapstructure:"url"            validate:"required"`
	MigrationsDir string `mapstructure:"migrations_dir" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name"     validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
}

// UsageLimitsConfig holds the per-category daily quotas enforced by the
// usage limiter. The limits are deployment configuration, never hardcoded
// in the engine.
type UsageLimitsConfig struct {
	ChatMessagesPerDay         int `mapstructure:"chat_messages_per_day"         validate:"required,gt=0"`
	FlashcardGenerationsPerDay int `mapstructure:"flashcard_generations_per_day" validate:"required,gt=0"`
	QuizGenerationsPerDay      int `mapstructure:"quiz_generations_per_day"      validate:"required,gt=0"`
	DocumentUploadsPerDay      int `mapstructure:"document_uploads_per_day"      validate:"required,gt=0"`
}

// LimitFor returns the configured daily limit for the given category.
func (c UsageLimitsConfig) LimitFor(category domain.UsageCategory) int {
	switch category {
	case domain.UsageCategoryChatMessage:
		return c.ChatMessagesPerDay
	case domain.UsageCategoryFlashcardGeneration:
		return c.FlashcardGenerationsPerDay
	case domain.UsageCategoryQuizGeneration:
		return c.QuizGenerationsPerDay
	case domain.UsageCategoryDocumentUpload:
		return c.DocumentUploadsPerDay
	default:
		return 0
	}
}
