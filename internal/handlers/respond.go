package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fitlog-app/fitlog-backend/internal/apperrors"
)

var (
	errInvalidBody         = apperrors.NewValidationError("body", "invalid request body")
	errUsernameRequired    = apperrors.NewValidationError("username", "username is required")
	errDescriptionRequired = apperrors.NewValidationError("description", "description is required")
	errDurationInvalid     = apperrors.NewValidationError("duration", "duration must be an integer")
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithField("error", err.Error()).Error("failed to encode response")
	}
}

// writeError maps a domain error onto its HTTP status and machine-readable
// code. Server-side failures are logged; client errors are not.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"error":  err.Error(),
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}
	h.writeJSON(w, httpErr.StatusCode, httpErr.ToErrorResponse())
}

// isJSONRequest reports whether the body should be decoded as JSON rather
// than form fields. The original client posts url-encoded form data.
func isJSONRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
