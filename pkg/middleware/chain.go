// Package middleware provides HTTP middleware functions for the API.
package middleware

import "net/http"

// Chain wraps a handler with multiple middlewares.
// Middlewares are applied in the order they are provided (first middleware
// is outermost).
//
// Example:
//
//	handler := middleware.Chain(
//	    mux,
//	    middleware.Logging(logger),
//	    middleware.Recovery(logger),
//	    middleware.CORS(corsConfig),
//	)
//
// This is equivalent to: Logging(Recovery(CORS(mux)))
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
