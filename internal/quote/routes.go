package quote

import (
	"net/http"

	"carreto-freight-api/internal/quote/handlers"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/middleware"
)

// RegisterRoutes registers all quote wizard routes
func RegisterRoutes(mux *http.ServeMux, handler *handlers.QuoteHandler, sessions *session.Manager) {
	attach := session.Attach(sessions)
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(attach(h))
	}

	mux.Handle("POST /api/v1/quotes", protected(handler.StartQuote))
	mux.Handle("GET /api/v1/quotes/current", protected(handler.GetCurrent))
	mux.Handle("PATCH /api/v1/quotes/current", protected(handler.UpdateCurrent))
	mux.Handle("DELETE /api/v1/quotes/current", protected(handler.DiscardCurrent))
	mux.Handle("GET /api/v1/quotes/addresses", protected(handler.SuggestAddresses))
	mux.Handle("GET /api/v1/quotes/locate", protected(handler.LocateAddress))

	mux.Handle("POST /api/v1/quotes/current/next", protected(handler.Next))
	mux.Handle("POST /api/v1/quotes/current/back", protected(handler.Back))
	mux.Handle("POST /api/v1/quotes/current/submit", protected(handler.Submit))
	mux.Handle("POST /api/v1/quotes/current/edit", protected(handler.Edit))
	mux.Handle("POST /api/v1/quotes/current/finalize", protected(handler.Finalize))
}
