package middleware

import (
	"context"
	"net/http"

	"github.com/lead-capture-api/internal/pkg/token"
)

type contextKey string

const SessionKey contextKey = "session"

// sessionCookie is the cookie carrying the client-bound session credential.
// Pending verifications are keyed by its value, so whoever holds the cookie
// owns the pending state.
const sessionCookie = "lead_session"

// Session returns middleware that ensures every request carries a session
// token: it reuses the cookie when present, otherwise mints a fresh token
// and sets the cookie on the response. The token lands in the request
// context either way.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
				sid = c.Value
			} else {
				tok, err := token.NewSessionToken()
				if err != nil {
					http.Error(w, `{"success":false,"message":"internal error"}`, http.StatusInternalServerError)
					return
				}
				sid = tok
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), SessionKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the session token from the request context.
func SessionFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SessionKey).(string)
	return s, ok && s != ""
}
