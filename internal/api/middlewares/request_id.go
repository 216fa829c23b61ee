package middlewares

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/5w1tchy/books-service/internal/api/httpx"
)

const requestIDHeader = "X-Request-ID"

var ridRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID accepts a well-formed incoming X-Request-ID or mints a UUID,
// and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if !ridRe.MatchString(rid) {
			rid = uuid.NewString()
		}
		r = r.WithContext(httpx.WithRequestID(r.Context(), rid))
		r.Header.Set(requestIDHeader, rid)
		w.Header().Set(requestIDHeader, rid)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID returns the ID set by RequestID, or "" outside of it.
func GetRequestID(r *http.Request) string {
	return httpx.RequestIDFrom(r.Context())
}
