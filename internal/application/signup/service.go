package signup

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/lead-capture-api/internal/domain"
	"github.com/lead-capture-api/internal/infrastructure/mail"
	"github.com/lead-capture-api/internal/pkg/id"
	"github.com/lead-capture-api/internal/pkg/validate"
)

// otpTTL is the fixed validity window of an issued code.
const otpTTL = 10 * time.Minute

// PendingStore holds at most one pending verification per session.
// Put replaces any existing entry for the same session.
type PendingStore interface {
	Put(ctx context.Context, p *domain.PendingVerification) error
	Get(ctx context.Context, sessionID string) (*domain.PendingVerification, error)
	Delete(ctx context.Context, sessionID string) error
}

// AgreementStore persists one agreement per normalized email. Insert must
// return domain.ErrConflict when a record already exists — the storage
// layer, not the advisory existence check, arbitrates uniqueness.
type AgreementStore interface {
	Insert(ctx context.Context, a *domain.AgreementRecord) error
	GetByEmail(ctx context.Context, email string) (*domain.AgreementRecord, error)
}

// LinkResolver produces the gated download URL.
type LinkResolver interface {
	DownloadURL(ctx context.Context) (string, error)
}

// StaticLink resolves to a fixed preconfigured URL.
type StaticLink string

func (u StaticLink) DownloadURL(context.Context) (string, error) { return string(u), nil }

// IssueRequest carries the entry form fields for OTP issuance.
type IssueRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string
	Consent string `validate:"required,eq=yes"`
}

// VerifyRequest carries the code-submission form fields.
type VerifyRequest struct {
	Code  string `validate:"required"`
	Email string `validate:"required"`
}

type Service interface {
	IssueOTP(ctx context.Context, sessionID string, req IssueRequest) error
	VerifyOTP(ctx context.Context, sessionID string, req VerifyRequest) (downloadURL string, err error)
	Abandon(ctx context.Context, sessionID string) error
}

// ServiceDeps bundles the workflow's collaborators.
type ServiceDeps struct {
	PendingStore   PendingStore
	AgreementStore AgreementStore
	Mailer         mail.Mailer
	Links          LinkResolver
}

type service struct {
	pendings   PendingStore
	agreements AgreementStore
	mailer     mail.Mailer
	links      LinkResolver
}

func NewService(deps ServiceDeps) Service {
	return &service{
		pendings:   deps.PendingStore,
		agreements: deps.AgreementStore,
		mailer:     deps.Mailer,
		links:      deps.Links,
	}
}

// IssueOTP validates the form, mints a fresh 6-digit code bound to the
// session, stores it with a 10-minute expiry (replacing any prior pending
// code for the session) and emails it. A failed send rolls the pending
// entry back so no undeliverable code is left outstanding.
func (s *service) IssueOTP(ctx context.Context, sessionID string, req IssueRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	if s.mailer == nil {
		return fmt.Errorf("mail delivery not configured: %w", domain.ErrNotConfigured)
	}

	code, err := newOTPCode()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p := &domain.PendingVerification{
		SessionID: sessionID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Code:      code,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(otpTTL).Unix(),
	}
	if err := s.pendings.Put(ctx, p); err != nil {
		slog.Error("failed to store pending verification", "session_id", sessionID, "err", err)
		return fmt.Errorf("store pending verification: %w", domain.ErrStorage)
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in %d minutes.</p>",
		html.EscapeString(req.Name), code, int(otpTTL.Minutes()),
	)
	if err := s.mailer.SendEmail(req.Email, "Your verification code", body); err != nil {
		slog.Error("failed to send OTP email", "err", err)
		if delErr := s.pendings.Delete(ctx, sessionID); delErr != nil {
			slog.Warn("failed to roll back pending verification after send failure", "session_id", sessionID, "err", delErr)
		}
		return fmt.Errorf("send OTP email: %w", domain.ErrDeliveryFailed)
	}
	return nil
}

// VerifyOTP checks the submitted code against the session's pending
// verification: session binding first, then expiry, then code equality.
// On a match it idempotently persists the agreement and returns the gated
// download URL. An invalid code leaves the pending entry intact so the
// user may retry within the remaining window.
func (s *service) VerifyOTP(ctx context.Context, sessionID string, req VerifyRequest) (string, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(&req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	p, err := s.pendings.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("no verification in progress for this session: %w", domain.ErrNoPending)
	}
	if err != nil {
		slog.Error("failed to load pending verification", "session_id", sessionID, "err", err)
		return "", fmt.Errorf("load pending verification: %w", domain.ErrStorage)
	}

	// Identity binding check. Deliberately indistinguishable from the
	// no-pending case so it leaks nothing about other sessions.
	if p.Email != req.Email {
		return "", fmt.Errorf("email does not match verification in progress: %w", domain.ErrSessionMismatch)
	}

	now := time.Now().UTC()
	if now.Unix() > p.ExpiresAt {
		if delErr := s.pendings.Delete(ctx, sessionID); delErr != nil {
			slog.Warn("failed to delete expired pending verification", "session_id", sessionID, "err", delErr)
		}
		return "", fmt.Errorf("verification code expired: %w", domain.ErrExpired)
	}

	if p.Code != req.Code {
		return "", fmt.Errorf("verification code mismatch: %w", domain.ErrInvalidCode)
	}

	if err := s.recordAgreement(ctx, p, now); err != nil {
		// Pending state stays so the user can retry without a new code.
		return "", err
	}

	if s.links == nil {
		return "", fmt.Errorf("download link not configured: %w", domain.ErrNotConfigured)
	}
	url, err := s.links.DownloadURL(ctx)
	if err != nil {
		slog.Error("failed to resolve download link", "err", err)
		return "", fmt.Errorf("resolve download link: %w", domain.ErrStorage)
	}

	if err := s.pendings.Delete(ctx, sessionID); err != nil {
		slog.Warn("failed to delete consumed pending verification", "session_id", sessionID, "err", err)
	}
	return url, nil
}

// recordAgreement performs the idempotent persistence write. The existence
// check is an optimization only; a conditional-put conflict means another
// verification for the same email already produced the record, which is
// the desired end state.
func (s *service) recordAgreement(ctx context.Context, p *domain.PendingVerification, now time.Time) error {
	_, err := s.agreements.GetByEmail(ctx, p.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.Error("failed to check existing agreement", "err", err)
		return fmt.Errorf("check agreement: %w", domain.ErrStorage)
	}

	rec := &domain.AgreementRecord{
		AgreementID: id.New(),
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		AgreedAt:    now,
	}
	if err := s.agreements.Insert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		slog.Error("failed to insert agreement", "err", err)
		return fmt.Errorf("insert agreement: %w", domain.ErrStorage)
	}
	return nil
}

// Abandon clears any pending verification for the session. Called when
// the user returns to the entry page.
func (s *service) Abandon(ctx context.Context, sessionID string) error {
	return s.pendings.Delete(ctx, sessionID)
}

// newOTPCode draws a uniformly random code from [100000, 999999].
func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
