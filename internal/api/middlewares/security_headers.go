package middlewares

import "net/http"

var securityHeaders = [][2]string{
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "1; mode=block"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "no-referrer"},
	{"Cache-Control", "no-store, no-cache, must-revalidate, max-age=0"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

var strictHeaders = [][2]string{
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
}

// SecurityHeaders sets hardening headers on every response. strict adds
// the cross-origin isolation headers. HSTS is only sent over TLS.
func SecurityHeaders(strict bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			if strict {
				for _, kv := range strictHeaders {
					h.Set(kv[0], kv[1])
				}
			}
			if r.TLS != nil {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
