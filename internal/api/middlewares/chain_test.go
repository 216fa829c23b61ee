package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mw "github.com/5w1tchy/books-service/internal/api/middlewares"
)

func tag(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Order", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain_Order(t *testing.T) {
	rec := httptest.NewRecorder()
	mw.Chain(okHandler(), tag("a"), tag("b"), tag("c")).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(rec.Header().Values("X-Order"), ","); got != "a,b,c" {
		t.Errorf("order = %s", got)
	}
}
