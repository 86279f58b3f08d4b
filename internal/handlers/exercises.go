package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ExerciseResponse mirrors the public shape returned after recording an
// exercise; "_id" echoes the user identifier from the request path.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// RecordExercise handles POST /api/users/{_id}/exercises.
func (h *Handler) RecordExercise(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")

	var description, duration, date string
	if isJSONRequest(r) {
		var req struct {
			Description string `json:"description"`
			Duration    any    `json:"duration"`
			Date        string `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, r, errInvalidBody)
			return
		}
		description = req.Description
		date = req.Date
		// Clients send duration as either a number or a string
		switch v := req.Duration.(type) {
		case string:
			duration = v
		case float64:
			duration = strconv.FormatFloat(v, 'f', -1, 64)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, errInvalidBody)
			return
		}
		description = r.PostFormValue("description")
		duration = r.PostFormValue("duration")
		date = r.PostFormValue("date")
	}

	description = strings.TrimSpace(description)
	if description == "" {
		h.writeError(w, r, errDescriptionRequired)
		return
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		h.writeError(w, r, errDurationInvalid)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.exercises.RecordExercise(ctx, userID, description, minutes, strings.TrimSpace(date))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, ExerciseResponse{
		Username:    result.Username,
		Description: result.Description,
		Duration:    result.Duration,
		Date:        result.Date,
		ID:          result.UserID,
	})
}
