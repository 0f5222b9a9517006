package session

import (
	"context"
	"net/http"

	"carreto-freight-api/pkg/middleware"
	"carreto-freight-api/pkg/response"
)

type contextKey string

const sessionKey contextKey = "session"

// Attach resolves the session named by the validated token claims and
// stores it in the request context. Must run after RequireAuth. A valid
// token whose session was evicted gets a 401 so the client re-logs.
func Attach(manager *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := middleware.GetClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, "authentication required")
				return
			}
			s, ok := manager.Get(claims.SessionID)
			if !ok {
				response.Unauthorized(w, "session expired, please sign in again")
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		})
	}
}

// NewContext returns ctx carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session attached by Attach, or nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok {
		return s
	}
	return nil
}
