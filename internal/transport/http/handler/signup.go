package handler

import (
	"log/slog"
	"net/http"

	"github.com/lead-capture-api/internal/application/signup"
	"github.com/lead-capture-api/internal/transport/http/middleware"
)

// SignupHandler handles the lead-capture flow endpoints.
type SignupHandler struct {
	svc signup.Service
}

func NewSignupHandler(svc signup.Service) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// Entry serves the landing page. Returning here abandons any verification
// in progress for the session.
func (h *SignupHandler) Entry(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionFromContext(r.Context())
	if ok {
		if err := h.svc.Abandon(r.Context(), sid); err != nil {
			slog.Warn("failed to clear pending verification on entry", "err", err)
		}
	}
	// The real landing page is served by the frontend; this placeholder
	// keeps the route alive for direct hits.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!DOCTYPE html><html><body><h1>Get the app</h1></body></html>"))
}

// SendOTP handles POST /send_otp.
func (h *SignupHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	req := signup.IssueRequest{
		Name:    r.PostFormValue("user_name"),
		Email:   r.PostFormValue("user_email"),
		Phone:   r.PostFormValue("user_phone"),
		Consent: r.PostFormValue("agree_terms"),
	}
	if err := h.svc.IssueOTP(r.Context(), sid, req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "A verification code has been sent to your email."})
}

// VerifyOTP handles POST /verify_otp.
func (h *SignupHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	req := signup.VerifyRequest{
		Code:  r.PostFormValue("otp_code"),
		Email: r.PostFormValue("user_email"),
	}
	url, err := h.svc.VerifyOTP(r.Context(), sid, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{Success: true, DownloadURL: url})
}
