package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/generation"
	"google.golang.org/genai"
)

// Verify interface compliance at compile time
var _ generation.Generator = (*GeminiGenerator)(nil)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate flashcards and quiz questions from
// source material.
type GeminiGenerator struct {
	logger *slog.Logger
	config config.LLMConfig

	flashcardTmpl *template.Template
	quizTmpl      *template.Template

	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a new GeminiGenerator. It validates the LLM
// configuration and initializes the Gemini API client.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	flashcardTmpl, err := template.New("flashcards").Parse(flashcardPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse flashcard prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	quizTmpl, err := template.New("quiz").Parse(quizPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse quiz prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:        logger.With(slog.String("component", "gemini_generator")),
		config:        cfg,
		flashcardTmpl: flashcardTmpl,
		quizTmpl:      quizTmpl,
		client:        client,
		model:         cfg.ModelName,
	}, nil
}

// GenerateFlashcards implements generation.Generator.GenerateFlashcards.
func (g *GeminiGenerator) GenerateFlashcards(
	ctx context.Context,
	sourceText, topic string,
	userID, groupID, projectID uuid.UUID,
	count int,
) ([]*domain.Flashcard, error) {
	prompt, err := g.renderPrompt(g.flashcardTmpl, sourceText, topic, count)
	if err != nil {
		return nil, err
	}

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed flashcardResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", generation.ErrInvalidResponse)
	}

	cards := make([]*domain.Flashcard, 0, len(parsed.Cards))
	for i, schema := range parsed.Cards {
		if schema.Front == "" {
			return nil, fmt.Errorf("%w: card %d missing front side", generation.ErrInvalidResponse, i)
		}
		if schema.Back == "" {
			return nil, fmt.Errorf("%w: card %d missing back side", generation.ErrInvalidResponse, i)
		}

		card, err := domain.NewFlashcard(userID, groupID, projectID, topic, schema.Front, schema.Back)
		if err != nil {
			return nil, fmt.Errorf("failed to create flashcard: %w", err)
		}
		cards = append(cards, card)
	}

	g.logger.InfoContext(ctx, "generated flashcards",
		slog.String("topic", topic),
		slog.Int("count", len(cards)))

	return cards, nil
}

// GenerateQuizQuestions implements generation.Generator.GenerateQuizQuestions.
func (g *GeminiGenerator) GenerateQuizQuestions(
	ctx context.Context,
	sourceText, topic string,
	userID, groupID, projectID uuid.UUID,
	count int,
) ([]*domain.QuizQuestion, error) {
	prompt, err := g.renderPrompt(g.quizTmpl, sourceText, topic, count)
	if err != nil {
		return nil, err
	}

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed quizResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", generation.ErrInvalidResponse)
	}

	questions := make([]*domain.QuizQuestion, 0, len(parsed.Questions))
	for i, schema := range parsed.Questions {
		question, err := domain.NewQuizQuestion(
			userID, groupID, projectID,
			topic, schema.Question, schema.Options, schema.CorrectAnswer,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrInvalidResponse, i, err)
		}
		questions = append(questions, question)
	}

	g.logger.InfoContext(ctx, "generated quiz questions",
		slog.String("topic", topic),
		slog.Int("count", len(questions)))

	return questions, nil
}

// renderPrompt executes a prompt template with the source material.
func (g *GeminiGenerator) renderPrompt(
	tmpl *template.Template,
	sourceText, topic string,
	count int,
) (string, error) {
	if sourceText == "" {
		return "", generation.ErrEmptySourceText
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{
		SourceText: sourceText,
		Topic:      topic,
		Count:      count,
	}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Transient errors are retried up to config.MaxRetries times; permanent
// errors (malformed responses, safety blocks) return immediately.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "calling Gemini API",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		text, transient, err := g.callOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !transient {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce makes a single Gemini API request and extracts the response text.
// The second return value reports whether a failure is worth retrying.
func (g *GeminiGenerator) callOnce(ctx context.Context, prompt string) (string, bool, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", false, fmt.Errorf("%w: blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}

	if text == "" {
		return "", false, fmt.Errorf("%w: no text in response", generation.ErrInvalidResponse)
	}

	return text, false, nil
}
