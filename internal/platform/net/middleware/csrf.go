package middleware

import (
	"net/http"

	pnet "storefront/internal/platform/net"
)

// CSRF copies the named cookie onto the request context so handlers can echo it
// An empty name disables the middleware; nothing is stored when the cookie is missing or empty
func CSRF(cookie string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cookie == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(cookie); err == nil && c.Value != "" {
				r = r.WithContext(pnet.WithCSRF(r.Context(), cookie, c.Value))
			}
			next.ServeHTTP(w, r)
		})
	}
}
