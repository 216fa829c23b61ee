package middlewares

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter records the status code and stamps X-Response-Time just
// before the header is sent.
type statusWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.Header().Set("X-Response-Time", time.Since(w.start).String())
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// AccessLog logs one line per request and sets X-Response-Time.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, start: time.Now(), status: http.StatusOK}
			next.ServeHTTP(sw, r)

			if !sw.wroteHeader {
				sw.Header().Set("X-Response-Time", time.Since(sw.start).String())
			}
			log.InfoContext(r.Context(), "access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", time.Since(sw.start).Milliseconds(),
				"request_id", GetRequestID(r),
				"remote_ip", clientIP(r),
			)
		})
	}
}
