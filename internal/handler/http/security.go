package http

import (
	"net/http"
	"strings"
)

// ContentSecurityPolicy is the policy of every page. Pages are JSON
// documents, so nothing may be loaded or framed; forms post back to the
// site only.
var ContentSecurityPolicy = strings.Join([]string{
	"default-src 'none'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
	"form-action 'self'",
}, "; ")

// SecurityHeaders sets the CSP and the usual hardening headers on every
// response. With reportOnly the CSP is sent as
// Content-Security-Policy-Report-Only.
func SecurityHeaders(reportOnly bool) Middleware {
	cspHeader := "Content-Security-Policy"
	if reportOnly {
		cspHeader = "Content-Security-Policy-Report-Only"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(cspHeader, ContentSecurityPolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "same-origin")
			next.ServeHTTP(w, r)
		})
	}
}
