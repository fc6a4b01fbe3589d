package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RecordReviewRequest defines the payload for recording a flashcard review.
type RecordReviewRequest struct {
	ItemID    uuid.UUID `json:"item_id"    validate:"required"`
	GroupID   uuid.UUID `json:"group_id"   validate:"required"`
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	Quality   int       `json:"quality"    validate:"min=0,max=5"`
}

// ReviewStateResponse is the scheduling state returned after a review.
type ReviewStateResponse struct {
	ItemID          uuid.UUID  `json:"item_id"`
	EaseFactor      float64    `json:"ease_factor"`
	IntervalDays    int        `json:"interval_days"`
	RepetitionCount int        `json:"repetition_count"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt    time.Time  `json:"next_review_at"`
}

// NewReviewStateResponse converts a domain review state into its API shape.
func NewReviewStateResponse(state *domain.ReviewState) ReviewStateResponse {
	return ReviewStateResponse{
		ItemID:          state.ItemID,
		EaseFactor:      state.EaseFactor,
		IntervalDays:    state.IntervalDays,
		RepetitionCount: state.RepetitionCount,
		LastReviewedAt:  state.LastReviewedAt,
		NextReviewAt:    state.NextReviewAt,
	}
}

// CreateAttemptRequest defines the payload for recording a single attempt.
type CreateAttemptRequest struct {
	ProjectID     uuid.UUID `json:"project_id"     validate:"required"`
	ItemType      string    `json:"item_type"      validate:"required,oneof=flashcard quiz"`
	ItemID        uuid.UUID `json:"item_id"        validate:"required"`
	Topic         string    `json:"topic"`
	UserAnswer    *string   `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer" validate:"required"`
	WasCorrect    bool      `json:"was_correct"`
}

// CreateAttemptsBatchRequest defines the payload for recording a batch of attempts.
type CreateAttemptsBatchRequest struct {
	Attempts []CreateAttemptRequest `json:"attempts" validate:"required,min=1,dive"`
}

// AttemptResponse is the API shape of a recorded attempt.
type AttemptResponse struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"project_id"`
	ItemType      string    `json:"item_type"`
	ItemID        uuid.UUID `json:"item_id"`
	Topic         string    `json:"topic,omitempty"`
	UserAnswer    *string   `json:"user_answer,omitempty"`
	CorrectAnswer string    `json:"correct_answer"`
	WasCorrect    bool      `json:"was_correct"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAttemptResponse converts a domain attempt into its API shape.
func NewAttemptResponse(a *domain.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:            a.ID,
		ProjectID:     a.ProjectID,
		ItemType:      string(a.ItemType),
		ItemID:        a.ItemID,
		Topic:         a.Topic,
		UserAnswer:    a.UserAnswer,
		CorrectAnswer: a.CorrectAnswer,
		WasCorrect:    a.WasCorrect,
		CreatedAt:     a.CreatedAt,
	}
}

// BatchAttemptsResponse reports how many attempts were recorded out of the
// submitted batch.
type BatchAttemptsResponse struct {
	Recorded  int               `json:"recorded"`
	Submitted int               `json:"submitted"`
	Attempts  []AttemptResponse `json:"attempts"`
}

// UsageCategoryResponse is one category's consumption in a usage snapshot.
type UsageCategoryResponse struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// UsageSnapshotResponse is the API shape of a user's daily usage.
type UsageSnapshotResponse struct {
	Categories map[string]UsageCategoryResponse `json:"categories"`
	AsOf       time.Time                        `json:"as_of"`
}

// QuotaExceededResponse is the 429 payload carrying the rejected category
// and its counters.
type QuotaExceededResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
	Used     int    `json:"used"`
	Limit    int    `json:"limit"`
	TraceID  string `json:"trace_id,omitempty"`
}

// GenerateRequest defines the payload for the generation endpoints.
type GenerateRequest struct {
	GroupID    uuid.UUID `json:"group_id"    validate:"required"`
	ProjectID  uuid.UUID `json:"project_id"  validate:"required"`
	Topic      string    `json:"topic"       validate:"required"`
	SourceText string    `json:"source_text" validate:"required"`
	Count      int       `json:"count"       validate:"min=0,max=50"`
}

// FlashcardResponse is the API shape of a flashcard.
type FlashcardResponse struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Topic     string    `json:"topic"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
}

// NewFlashcardResponse converts a domain flashcard into its API shape.
func NewFlashcardResponse(c *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        c.ID,
		GroupID:   c.GroupID,
		ProjectID: c.ProjectID,
		Topic:     c.Topic,
		Front:     c.Front,
		Back:      c.Back,
	}
}

// QuizQuestionResponse is the API shape of a quiz question.
type QuizQuestionResponse struct {
	ID            uuid.UUID `json:"id"`
	GroupID       uuid.UUID `json:"group_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	Topic         string    `json:"topic"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
}

// NewQuizQuestionResponse converts a domain quiz question into its API shape.
func NewQuizQuestionResponse(q *domain.QuizQuestion) QuizQuestionResponse {
	return QuizQuestionResponse{
		ID:            q.ID,
		GroupID:       q.GroupID,
		ProjectID:     q.ProjectID,
		Topic:         q.Topic,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}
}
