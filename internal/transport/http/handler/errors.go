package handler

import (
	"errors"
	"net/http"

	"github.com/lead-capture-api/internal/domain"
)

// httpError maps domain sentinels to an HTTP status and a caller-safe
// message. Session mismatches deliberately share the no-pending message so
// nothing leaks about other sessions' state.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusBadRequest, "Name, a valid email, and agreement to the terms are required.")
	case errors.Is(err, domain.ErrNotConfigured):
		writeFailure(w, http.StatusServiceUnavailable, "Service is not configured. Please try again later.")
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeFailure(w, http.StatusBadGateway, "Could not send the verification email. Please try again.")
	case errors.Is(err, domain.ErrExpired):
		writeFailure(w, http.StatusBadRequest, "Verification code expired. Please request a new one.")
	case errors.Is(err, domain.ErrInvalidCode):
		writeFailure(w, http.StatusBadRequest, "Invalid verification code.")
	case errors.Is(err, domain.ErrNoPending), errors.Is(err, domain.ErrSessionMismatch):
		writeFailure(w, http.StatusBadRequest, "No verification in progress. Please request a new code.")
	case errors.Is(err, domain.ErrStorage):
		writeFailure(w, http.StatusInternalServerError, "A temporary error occurred. Please try again.")
	default:
		writeFailure(w, http.StatusInternalServerError, "Internal error.")
	}
}
