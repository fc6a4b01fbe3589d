package api

import (
	"errors"
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/middleware"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/service/studycontent"
	"github.com/studyloop/studyloop-api/internal/service/usage"
)

// GenerationHandler handles AI content generation API requests.
type GenerationHandler struct {
	contentService studycontent.Service
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(contentService studycontent.Service) *GenerationHandler {
	return &GenerationHandler{
		contentService: contentService,
	}
}

// GenerateFlashcards handles POST /generate/flashcards.
func (h *GenerationHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	cards, err := h.contentService.GenerateFlashcards(r.Context(), userID, studycontent.GenerateRequest{
		GroupID:    req.GroupID,
		ProjectID:  req.ProjectID,
		Topic:      req.Topic,
		SourceText: req.SourceText,
		Count:      req.Count,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, NewFlashcardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// GenerateQuiz handles POST /generate/quiz.
func (h *GenerationHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	questions, err := h.contentService.GenerateQuiz(r.Context(), userID, studycontent.GenerateRequest{
		GroupID:    req.GroupID,
		ProjectID:  req.ProjectID,
		Topic:      req.Topic,
		SourceText: req.SourceText,
		Count:      req.Count,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]QuizQuestionResponse, 0, len(questions))
	for _, question := range questions {
		resp = append(resp, NewQuizQuestionResponse(question))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

func (h *GenerationHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}

	return req, true
}

// respondError handles generation errors, giving quota rejections their
// structured 429 payload with the category and counters.
func (h *GenerationHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var quotaErr *usage.QuotaExceededError
	if errors.As(err, &quotaErr) {
		shared.RespondWithJSON(w, r, http.StatusTooManyRequests, QuotaExceededResponse{
			Error:    quotaErr.Error(),
			Category: string(quotaErr.Category),
			Used:     quotaErr.Used,
			Limit:    quotaErr.Limit,
			TraceID:  shared.GetTraceID(r.Context()),
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
