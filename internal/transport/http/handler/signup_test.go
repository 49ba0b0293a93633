package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/lead-capture-api/internal/application/signup"
	"github.com/lead-capture-api/internal/domain"
	"github.com/lead-capture-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockSignupSvc struct{ mock.Mock }

func (m *mockSignupSvc) IssueOTP(ctx context.Context, sessionID string, req signup.IssueRequest) error {
	return m.Called(ctx, sessionID, req).Error(0)
}

func (m *mockSignupSvc) VerifyOTP(ctx context.Context, sessionID string, req signup.VerifyRequest) (string, error) {
	args := m.Called(ctx, sessionID, req)
	return args.String(0), args.Error(1)
}

func (m *mockSignupSvc) Abandon(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// --- helpers ---

// formReq builds a form POST carrying the given session token in context,
// the way the session middleware would.
func formReq(method, target, sessionID string, form url.Values) *http.Request {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx := context.WithValue(r.Context(), middleware.SessionKey, sessionID)
	return r.WithContext(ctx)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) MessageEnvelope {
	t.Helper()
	var env MessageEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

// --- SendOTP ---

func TestSendOTP_HappyPath(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("IssueOTP", mock.Anything, "s1", signup.IssueRequest{
		Name:    "Alice",
		Email:   "alice@example.com",
		Consent: "yes",
	}).Return(nil)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.SendOTP(rec, formReq(http.MethodPost, "/send_otp", "s1", url.Values{
		"user_name":   {"Alice"},
		"user_email":  {"alice@example.com"},
		"agree_terms": {"yes"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeMessage(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "sent")
	svc.AssertExpectations(t)
}

func TestSendOTP_ValidationFailure(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("IssueOTP", mock.Anything, "s1", mock.Anything).Return(domain.ErrValidation)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.SendOTP(rec, formReq(http.MethodPost, "/send_otp", "s1", url.Values{
		"user_email": {"alice@example.com"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeMessage(t, rec).Success)
}

func TestSendOTP_DeliveryFailure(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("IssueOTP", mock.Anything, "s1", mock.Anything).Return(domain.ErrDeliveryFailed)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.SendOTP(rec, formReq(http.MethodPost, "/send_otp", "s1", url.Values{
		"user_name":   {"Alice"},
		"user_email":  {"alice@example.com"},
		"agree_terms": {"yes"},
	}))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, decodeMessage(t, rec).Success)
}

func TestSendOTP_NoSession_InternalError(t *testing.T) {
	h := NewSignupHandler(&mockSignupSvc{})
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/send_otp", strings.NewReader(""))
	h.SendOTP(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- VerifyOTP ---

func TestVerifyOTP_HappyPath_ReturnsDownloadURL(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("VerifyOTP", mock.Anything, "s1", signup.VerifyRequest{
		Code:  "123456",
		Email: "alice@example.com",
	}).Return("https://downloads.example.com/app.apk", nil)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, formReq(http.MethodPost, "/verify_otp", "s1", url.Values{
		"otp_code":   {"123456"},
		"user_email": {"alice@example.com"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	var env VerifyEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "https://downloads.example.com/app.apk", env.DownloadURL)
	svc.AssertExpectations(t)
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("VerifyOTP", mock.Anything, "s1", mock.Anything).Return("", domain.ErrExpired)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, formReq(http.MethodPost, "/verify_otp", "s1", url.Values{
		"otp_code":   {"123456"},
		"user_email": {"alice@example.com"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeMessage(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "expired")
}

func TestVerifyOTP_SessionMismatch_SameMessageAsNoPending(t *testing.T) {
	mismatch := &mockSignupSvc{}
	mismatch.On("VerifyOTP", mock.Anything, "s1", mock.Anything).Return("", domain.ErrSessionMismatch)
	noPending := &mockSignupSvc{}
	noPending.On("VerifyOTP", mock.Anything, "s1", mock.Anything).Return("", domain.ErrNoPending)

	form := url.Values{"otp_code": {"123456"}, "user_email": {"bob@example.com"}}

	rec1 := httptest.NewRecorder()
	NewSignupHandler(mismatch).VerifyOTP(rec1, formReq(http.MethodPost, "/verify_otp", "s1", form))
	rec2 := httptest.NewRecorder()
	NewSignupHandler(noPending).VerifyOTP(rec2, formReq(http.MethodPost, "/verify_otp", "s1", form))

	assert.Equal(t, rec1.Code, rec2.Code)
	assert.Equal(t, decodeMessage(t, rec1).Message, decodeMessage(t, rec2).Message)
}

func TestVerifyOTP_InvalidCode(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("VerifyOTP", mock.Anything, "s1", mock.Anything).Return("", domain.ErrInvalidCode)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, formReq(http.MethodPost, "/verify_otp", "s1", url.Values{
		"otp_code":   {"000000"},
		"user_email": {"alice@example.com"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeMessage(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Invalid")
}

// --- Entry ---

func TestEntry_ClearsPendingVerification(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("Abandon", mock.Anything, "s1").Return(nil)

	h := NewSignupHandler(svc)
	rec := httptest.NewRecorder()
	h.Entry(rec, formReq(http.MethodGet, "/", "s1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	svc.AssertExpectations(t)
}
