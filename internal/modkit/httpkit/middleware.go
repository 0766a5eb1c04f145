package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"storefront/internal/platform/config"
	pnet "storefront/internal/platform/net"
	"storefront/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	CORSMaxAge  time.Duration
	Timeout     time.Duration
	Slow        time.Duration

	// MaxInFlight of zero disables throttling
	MaxInFlight int
	Backlog     int
	BacklogWait time.Duration
}

// StackFromConfig reads HTTP_* keys from c
func StackFromConfig(c config.Conf) StackOptions {
	h := c.Prefix("HTTP_")
	return StackOptions{
		CORSOrigins: h.MayCSV("CORS_ORIGINS", []string{"*"}),
		CORSMaxAge:  h.MayDuration("CORS_MAX_AGE", 10*time.Minute),
		Timeout:     h.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Slow:        h.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		MaxInFlight: h.MayInt("MAX_IN_FLIGHT", 0),
		Backlog:     h.MayInt("BACKLOG", 100),
		BacklogWait: h.MayDuration("BACKLOG_WAIT", 5*time.Second),
	}
}

// CommonStack is the middleware every API route runs behind, outermost first
// nothing here sets Cache-Control so conditional GETs keep working
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight, o.Backlog, o.BacklogWait),
		middleware.CORS(o.CORSOrigins, o.CORSMaxAge),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// CSRF exposes the named cookie to handlers through the request context
func CSRF(cookie string) func(http.Handler) http.Handler { return middleware.CSRF(cookie) }

// CSRFToken returns the pair stored by CSRF
func CSRFToken(r *http.Request) (name, value string) { return pnet.CSRF(r.Context()) }
