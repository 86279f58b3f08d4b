package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// UserResponse mirrors the public user shape: the assigned identifier is
// exposed as "_id".
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var username string
	if isJSONRequest(r) {
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, r, errInvalidBody)
			return
		}
		username = req.Username
	} else {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, errInvalidBody)
			return
		}
		username = r.PostFormValue("username")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		h.writeError(w, r, errUsernameRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.CreateUser(ctx, username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, UserResponse{
		Username: user.Username,
		ID:       user.ID.Hex(),
	})
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, UserResponse{
			Username: u.Username,
			ID:       u.ID.Hex(),
		})
	}

	h.writeJSON(w, http.StatusOK, result)
}
