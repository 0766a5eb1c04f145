package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	perr "storefront/internal/platform/errors"
	"storefront/internal/platform/logger"
	pnet "storefront/internal/platform/net"

	"github.com/pkg/errors"
)

// RecoverJSON turns a panic into a 500 JSON:API errors document
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			cause, ok := v.(error)
			if !ok {
				cause = fmt.Errorf("%v", v)
			}
			logger.C(r.Context()).Error().
				Stack().
				Err(errors.WithStack(cause)).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			rid := pnet.RequestID(r.Context())
			if rid != "" {
				w.Header().Set("X-Request-Id", rid)
			}
			status, body := pnet.Errors(perr.PanicErrf("panic recovered"), rid)
			w.Header().Set("Content-Type", "application/vnd.api+json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
