package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// sessionIDKey is the request-context key the resolved session id is stored
// under.
const sessionIDKey contextKey = "sessionID"

// SessionResolver checks that a session id refers to a live session.
type SessionResolver interface {
	Exists(ctx context.Context, id string) bool
}

// Session returns middleware that resolves the caller's session from the
// session cookie or the X-Session-Id header and stores its id in the
// request context. Requests without a valid session pass through anonymous;
// handlers that require authentication reject on an empty id themselves.
func Session(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := extractSessionID(r, cookieName)
			if id != "" && !resolver.Exists(r.Context(), id) {
				id = ""
			}
			if id != "" {
				r = r.WithContext(context.WithValue(r.Context(), sessionIDKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionID returns the resolved session id for a request, or "" when the
// caller is anonymous.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

// extractSessionID looks for the session id in the named cookie first, then
// in the X-Session-Id header for non-browser clients.
func extractSessionID(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(r.Header.Get("X-Session-Id"))
}
