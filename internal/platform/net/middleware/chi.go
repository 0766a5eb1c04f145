// Package middleware holds the request middleware the API mounts
// chi and go-chi/cors stay behind these constructors
package middleware

import (
	"net/http"
	"time"

	pstrings "storefront/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// StripSlashes routes /foo/ as /foo
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Timeout cancels the request context after d; zero disables it
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return passthrough
	}
	return chimw.Timeout(d)
}

// Throttle caps in flight requests; requests past backlog wait at most wait, then get 429
// a limit of zero disables it
func Throttle(limit, backlog int, wait time.Duration) Middleware {
	if limit <= 0 {
		return passthrough
	}
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// JSONAPITypes are compressed when Compress gets no types
var JSONAPITypes = []string{"application/vnd.api+json", "application/json", "text/plain"}

// Compress gzips or deflates responses of the given content types
func Compress(level int, types ...string) Middleware {
	c := chimw.NewCompressor(level, pstrings.IfEmpty(types, JSONAPITypes)...)
	return c.Handler
}

// CORS allows cross origin reads; mutating methods are never advertised
func CORS(origins []string, maxAge time.Duration) Middleware {
	if len(origins) == 0 {
		return passthrough
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match", "X-Request-Id"},
		ExposedHeaders: []string{"Allow", "ETag", "X-Request-Id"},
		MaxAge:         int(maxAge / time.Second),
	})
}

func passthrough(next http.Handler) http.Handler { return next }
