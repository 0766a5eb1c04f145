// @title         Storefront API
// @version       0.1.0
// @description   Read only JSON:API documents for the storefront catalog

package main

import (
	"context"
	"os/signal"
	"syscall"

	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"
	phttp "storefront/internal/platform/net/http"
	"storefront/internal/platform/store"
	"storefront/internal/platform/tracing"

	"storefront/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP, JSON:API and tracing (STOREFRONT_API_*)
	root := config.New()
	apiCfg := root.Prefix("STOREFRONT_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "storefront-api"
	}
	logger.Init(opt)
	l := logger.Get()

	shutdown, err := tracing.Setup(ctx, tracing.FromConfig(apiCfg, "storefront-api"))
	if err != nil {
		l.Panic().Err(err).Msg("tracing setup failed")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	st, err := store.Open(
		ctx,
		store.Config{AppName: "storefront-api", PG: store.PGFromConfig(pgCfg)},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	if err := st.Ready(ctx); err != nil {
		l.Warn().Err(err).Msg("store not ready at startup")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads STOREFRONT_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
