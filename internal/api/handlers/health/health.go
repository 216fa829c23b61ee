// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/5w1tchy/books-service/internal/api/httpx"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is a named dependency probed by Ready.
type Check struct {
	Name   string
	Pinger Pinger
}

const readyTimeout = 2 * time.Second

// Live always answers 200 while the process can serve HTTP.
func Live(w http.ResponseWriter, _ *http.Request) {
	httpx.Success(w, http.StatusOK, "ok", nil)
}

// Ready pings every check and answers 503 on the first failure.
func Ready(log *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.Pinger.Ping(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", "check", c.Name, "error", err)
				httpx.Fail(w, http.StatusServiceUnavailable, httpx.CodeNotReady, c.Name+" is not ready")
				return
			}
			status[c.Name] = "ok"
		}
		httpx.Success(w, http.StatusOK, "ready", status)
	}
}
