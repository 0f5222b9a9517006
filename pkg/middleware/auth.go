// Package middleware provides HTTP middleware functions for the API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"carreto-freight-api/pkg/authx"
	"carreto-freight-api/pkg/response"
)

// Context keys for authenticated request data
const (
	// ClaimsKey is the context key for the validated session claims
	ClaimsKey contextKey = "claims"
)

// RequireAuth validates the Bearer token and stores its claims in the
// request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, map[string]string{"authorization": "Missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(w, map[string]string{"authorization": "Invalid authorization header format"})
			return
		}

		claims, err := authx.ValidateSessionToken(parts[1])
		if err != nil {
			switch err {
			case authx.ErrExpiredToken:
				response.Unauthorized(w, map[string]string{"token": "Token has expired"})
			default:
				response.Unauthorized(w, map[string]string{"token": "Invalid token"})
			}
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WebSocketAuth validates the session token for websocket upgrades.
// Browsers cannot set headers on websocket requests, so the token is
// also accepted as a query parameter.
func WebSocketAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			response.Unauthorized(w, map[string]string{"token": "Missing token"})
			return
		}

		claims, err := authx.ValidateSessionToken(tokenString)
		if err != nil {
			response.Unauthorized(w, map[string]string{"token": "Invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a handler to callers whose session token carries
// the given role. Must be wrapped by RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, map[string]string{"authorization": "Authentication required"})
				return
			}
			if claims.Role != role {
				response.Forbidden(w, map[string]string{"role": "Insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims retrieves the validated claims from the context.
// Returns nil when the request was not authenticated.
func GetClaims(ctx context.Context) *authx.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*authx.Claims); ok {
		return claims
	}
	return nil
}
