package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/api/middleware"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/service/reviews"
)

// defaultDueLimit caps a due-items listing when the client does not ask for
// a specific page size.
const defaultDueLimit = 20

// ReviewHandler handles spaced repetition API requests.
type ReviewHandler struct {
	reviewService reviews.Service
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService reviews.Service) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RecordReview handles POST /reviews. It applies one review outcome to the
// item's scheduling state and returns the updated state.
func (h *ReviewHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RecordReviewRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.reviewService.RecordReview(
		r.Context(), userID, req.ItemID, req.GroupID, req.ProjectID, req.Quality)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewReviewStateResponse(state))
}

// GetDueItems handles GET /groups/{groupID}/due. It returns the flashcards
// due for review, or an empty list when the group has spaced repetition
// disabled.
func (h *ReviewHandler) GetDueItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	cards, err := h.reviewService.GetDueItems(r.Context(), userID, groupID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, NewFlashcardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
