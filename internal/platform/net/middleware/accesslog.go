package middleware

import (
	"net/http"
	"time"

	"storefront/internal/platform/logger"
	pnet "storefront/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long; zero disables it
	Slow time.Duration
	// Logger defaults to the root logger
	Logger *logger.Logger
}

// AccessLog writes one line per request and puts the request id on the context logger
// 5xx responses log at error level
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ""))

			next.ServeHTTP(ww, r)

			base := opt.Logger
			if base == nil {
				base = logger.Get()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			lvl := zerolog.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case opt.Slow > 0 && elapsed >= opt.Slow:
				lvl = zerolog.WarnLevel
			}

			evt := logger.From(r.Context(), *base).WithLevel(lvl).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed)
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Msg("request done")
		})
	}
}
