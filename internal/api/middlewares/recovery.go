package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/books-service/internal/api/httpx"
	"github.com/5w1tchy/books-service/internal/apperr"
)

// Recovery turns a handler panic into an INTERNAL_SERVER_ERROR envelope.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					"request_id", GetRequestID(r),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httpx.Fail(w, http.StatusInternalServerError, apperr.KindInternal.Code(), apperr.GenericMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
