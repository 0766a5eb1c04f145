// Package api provides the HTTP API for the application
package api

import (
	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"
	phttp "storefront/internal/platform/net/http"
	"storefront/internal/platform/store"

	"storefront/internal/modkit"
	"storefront/internal/modkit/httpkit"
	"storefront/internal/modkit/swaggerkit"

	catalogmod "storefront/internal/services/api/catalog/module"
	metamod "storefront/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}

	mods := []modkit.Module{
		metamod.New(deps),
		catalogmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger,
			swaggerkit.Servers("/api/v1"),
			swaggerkit.TitleSuffix(opt.Config.MayString("DOCS_TITLE_SUFFIX", "")),
		)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			modkit.Register(m)
			m.MountRoutes(api)
		}
	})
}
