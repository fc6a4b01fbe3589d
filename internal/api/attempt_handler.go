package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/api/middleware"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/service/attempts"
)

// defaultAttemptsLimit caps a history listing when the client does not ask
// for a specific page size.
const defaultAttemptsLimit = 50

// AttemptHandler handles practice log API requests.
type AttemptHandler struct {
	attemptService attempts.Service
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService attempts.Service) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
	}
}

// CreateAttempt handles POST /attempts.
func (h *AttemptHandler) CreateAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateAttemptRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	attempt, err := h.attemptService.CreateAttempt(r.Context(), userID, toNewAttempt(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAttemptResponse(attempt))
}

// CreateAttemptsBatch handles POST /attempts/batch. Invalid records are
// skipped and the valid subset is committed.
func (h *AttemptHandler) CreateAttemptsBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateAttemptsBatchRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	inputs := make([]attempts.NewAttempt, 0, len(req.Attempts))
	for _, a := range req.Attempts {
		inputs = append(inputs, toNewAttempt(a))
	}

	created, err := h.attemptService.CreateAttemptsBatch(r.Context(), userID, inputs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := BatchAttemptsResponse{
		Recorded:  len(created),
		Submitted: len(req.Attempts),
		Attempts:  make([]AttemptResponse, 0, len(created)),
	}
	for _, attempt := range created {
		resp.Attempts = append(resp.Attempts, NewAttemptResponse(attempt))
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// GetAttempts handles GET /attempts with optional project_id and limit
// query parameters.
func (h *AttemptHandler) GetAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	projectID := uuid.Nil
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
			return
		}
		projectID = parsed
	}

	limit := defaultAttemptsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	records, err := h.attemptService.GetUserAttempts(r.Context(), userID, projectID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := make([]AttemptResponse, 0, len(records))
	for _, attempt := range records {
		resp = append(resp, NewAttemptResponse(attempt))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func toNewAttempt(req CreateAttemptRequest) attempts.NewAttempt {
	return attempts.NewAttempt{
		ProjectID:     req.ProjectID,
		ItemType:      domain.ItemType(req.ItemType),
		ItemID:        req.ItemID,
		Topic:         req.Topic,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		WasCorrect:    req.WasCorrect,
	}
}
