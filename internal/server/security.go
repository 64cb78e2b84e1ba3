package server

import (
	"net/http"
	"strings"
)

// corsMaxAge is how long browsers may cache a preflight response.
const corsMaxAge = "86400"

// SecurityConfig controls the hardening headers and CORS behavior of
// the metrics endpoints.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists origins granted cross-origin access. The
	// wildcard "*" matches every request, including ones without an
	// Origin header.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised to browsers.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the configuration used by the metrics
// server: CORS open to any origin, read-only methods. The endpoints
// expose no mutable state, so a permissive default is safe and keeps
// browser-based dashboards working out of the box.
//
// Returns:
//   - SecurityConfig: The default configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware wraps next with hardening headers, CORS handling
// and preflight short-circuiting. The hardening headers are set on
// every response regardless of method or CORS outcome.
//
// Parameters:
//   - config: The security configuration to enforce.
//   - next: The handler to protect.
//
// Returns:
//   - http.HandlerFunc: The wrapped handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if config.EnableCORS {
			setCORSHeaders(w, r, config)
		}

		// Preflight requests are answered here; they never reach the
		// application handlers.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies the browser hardening headers.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// setCORSHeaders emits the cross-origin grant when the request origin
// is allowed. A request with no Origin header only matches the
// wildcard.
func setCORSHeaders(w http.ResponseWriter, r *http.Request, config SecurityConfig) {
	origin := matchOrigin(r.Header.Get("Origin"), config.AllowedOrigins)
	if origin == "" {
		return
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", corsMaxAge)
}

// matchOrigin returns the Access-Control-Allow-Origin value for the
// given request origin, or "" when the origin is not allowed.
func matchOrigin(origin string, allowed []string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
