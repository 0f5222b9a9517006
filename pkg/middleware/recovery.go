// Package middleware provides HTTP middleware functions for the API.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"carreto-freight-api/pkg/response"
)

// Recovery returns a middleware that recovers from panics.
// It logs the panic with stack trace and returns a 500 error response so a
// misbehaving handler cannot take down the session server.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)

					response.InternalError(w, "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
