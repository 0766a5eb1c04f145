// Package module wires the catalog JSON:API into the API using modkit
package module

import (
	"net/http"

	"storefront/internal/core/jsonapi"
	"storefront/internal/modkit"
	"storefront/internal/modkit/httpkit"
	"storefront/internal/modkit/repokit"
	cataloghttp "storefront/internal/services/api/catalog/http"
	catalogrepo "storefront/internal/services/api/catalog/repo"
	catalogsvc "storefront/internal/services/api/catalog/service"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Module serves the catalog JSON:API under /jsonapi
type Module struct {
	modkit.Base
	ports adaptCatalogPort
}

// New constructs the catalog module from deps and JSONAPI_* config
// it panics when postgres is not wired or the link route is invalid
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog"), modkit.WithPrefix("/jsonapi")}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := newService(deps, o)

	mws := []func(http.Handler) http.Handler{otelhttp.NewMiddleware("jsonapi")}
	if o.CSRFCookie != "" {
		mws = append(mws, httpkit.CSRF(o.CSRFCookie))
	}

	return &Module{
		Base:  modkit.NewBase(b, mws, func(r httpkit.Router) { cataloghttp.Register(r, svc) }),
		ports: adaptCatalogPort{svc: svc},
	}
}

func newService(deps modkit.Deps, o Options) catalogsvc.Service {
	if deps.PG == nil {
		panic("catalog module requires postgres")
	}

	links, err := jsonapi.NewURLBuilder(o.URLConfig())
	if err != nil {
		panic(err)
	}
	composer, err := jsonapi.NewComposer(jsonapi.Config{
		ContentBaseURL: o.ContentBaseURL,
		Links:          links,
		NewErrorID:     uuid.NewString,
	})
	if err != nil {
		panic(err)
	}

	loader := catalogrepo.NewCached(
		catalogrepo.NewLoader(deps.PG, catalogrepo.NewPG(), repokit.StatementTimeout(o.StatementTimeout)),
		o.CacheTTL, o.CacheCleanup,
	)
	return catalogsvc.New(loader, catalogsvc.Config{
		Composer:  composer,
		Prefix:    o.Prefix,
		Resources: o.Resources,
	})
}
