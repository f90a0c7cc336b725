package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tin229oo/nadias-lending/internal/auth"
)

type contextKey string

const sessionKey contextKey = "sessionID"

// Session extracts the bearer token, resolves it to a session id, and attaches
// the id to the request context. Requests without a valid token pass through
// with no session; handlers decide whether that is an error.
func Session(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if sid, err := tokens.SessionID(strings.TrimSpace(token)); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, sid))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SessionID returns the session id attached to the request context, if any.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
