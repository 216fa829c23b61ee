// Package router maps the HTTP surface onto its handlers.
package router

import (
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/5w1tchy/books-service/internal/api/handlers/books"
	"github.com/5w1tchy/books-service/internal/api/handlers/health"
	"github.com/5w1tchy/books-service/internal/api/httpx"
)

// Router returns the routes for the books resource and the probes.
// Unmatched paths and methods answer with the JSON envelope.
func Router(svc books.Service, log *slog.Logger, checks ...health.Check) http.Handler {
	rt := httprouter.New()
	rt.RedirectTrailingSlash = false

	rt.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusNotFound, httpx.CodeNotFound, "The requested resource could not be found")
	})
	rt.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusMethodNotAllowed, httpx.CodeMethodNotAllowed,
			"The "+r.Method+" method is not supported for this resource")
	})

	books.New(svc, log).Register(rt)

	rt.HandlerFunc(http.MethodGet, "/healthz", health.Live)
	rt.HandlerFunc(http.MethodGet, "/readyz", health.Ready(log, checks...))

	return rt
}
