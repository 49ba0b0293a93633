package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// ErrValidation covers missing or malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfigured means mail delivery or the download link is missing
	// from the deployment; operator-actionable, never user-actionable.
	ErrNotConfigured = errors.New("not configured")

	// ErrDeliveryFailed means the outbound OTP message could not be sent.
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrExpired means the pending code's validity window has passed.
	ErrExpired = errors.New("code expired")

	// ErrInvalidCode means the submitted code does not match the pending one.
	ErrInvalidCode = errors.New("invalid code")

	// ErrNoPending means no verification is outstanding for the session.
	ErrNoPending = errors.New("no pending verification")

	// ErrSessionMismatch means the submitted email does not match the
	// identity bound to the session's pending verification.
	ErrSessionMismatch = errors.New("session mismatch")

	// ErrConflict is returned by stores when a uniqueness constraint fires.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned by stores when a record is absent.
	ErrNotFound = errors.New("not found")

	// ErrStorage covers persistence faults other than the above.
	ErrStorage = errors.New("storage error")
)
