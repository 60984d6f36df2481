package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"galmaetgil/internal/logger"
	"galmaetgil/internal/session"
)

// User-facing error messages.
const (
	ErrMsgInvalidBody     = "Invalid request body"
	ErrMsgInvalidCourseID = "Invalid course id"
	ErrMsgInvalidElapsed  = "Invalid elapsed time, want HH:MM:SS"
	ErrMsgLoginRequired   = "Login required"
	ErrMsgCourseNotFound  = "Course not found"
	ErrMsgInvalidReviewID = "Invalid review id"
	ErrMsgReviewNotFound  = "Review not found"
	ErrMsgEmailTaken      = "Email is already registered"
	ErrMsgServerError     = "Something went wrong"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondStoreError maps session errors onto HTTP statuses.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, ErrMsgLoginRequired)
	case errors.Is(err, session.ErrUnknownCourse):
		respondError(w, http.StatusNotFound, ErrMsgCourseNotFound)
	case errors.Is(err, session.ErrUnknownReview):
		respondError(w, http.StatusNotFound, ErrMsgReviewNotFound)
	case errors.Is(err, session.ErrEmailTaken):
		respondError(w, http.StatusConflict, ErrMsgEmailTaken)
	case errors.Is(err, session.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgServerError)
	}
}
