package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LogEntryResponse is one row of the exercise log.
type LogEntryResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the full logs payload for a user.
type LogResponse struct {
	ID       string             `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []LogEntryResponse `json:"log"`
}

// GetLogs handles GET /api/users/{_id}/logs with optional from, to and limit
// query parameters.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.logs.GetLogs(ctx, userID, query.Get("from"), query.Get("to"), query.Get("limit"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log := make([]LogEntryResponse, 0, len(result.Entries))
	for _, entry := range result.Entries {
		log = append(log, LogEntryResponse{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		})
	}

	h.writeJSON(w, http.StatusOK, LogResponse{
		ID:       result.UserID,
		Username: result.Username,
		Count:    result.Count,
		Log:      log,
	})
}
