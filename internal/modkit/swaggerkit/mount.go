// Package swaggerkit serves the embedded OpenAPI document and the swagger UI
package swaggerkit

import (
	"net/http"

	phttp "storefront/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the swagger UI and doc.json under /api/docs when enabled
// mutators run in order on every doc.json request
func Mount(r phttp.Router, enabled bool, mutate ...SpecMutator) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(mutate...))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("storefront"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
