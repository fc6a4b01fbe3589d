package api

import (
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/middleware"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/service/usage"
)

// UsageHandler handles usage snapshot API requests.
type UsageHandler struct {
	limiter usage.Limiter
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(limiter usage.Limiter) *UsageHandler {
	return &UsageHandler{
		limiter: limiter,
	}
}

// GetUsage handles GET /usage. It reports the authenticated user's current
// consumption against the configured daily limits.
func (h *UsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	snapshot, err := h.limiter.GetUsage(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	categories := make(map[string]UsageCategoryResponse, len(snapshot.Categories))
	for category, used := range snapshot.Categories {
		categories[string(category)] = UsageCategoryResponse{
			Used:  used.Used,
			Limit: used.Limit,
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UsageSnapshotResponse{
		Categories: categories,
		AsOf:       snapshot.AsOf,
	})
}
