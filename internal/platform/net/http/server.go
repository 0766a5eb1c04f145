package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listener serving it
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration
}

// NewServer reads API_PORT and the HTTP_* timeouts from cfg
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux:   m,
		drain: cfg.MayDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
			WriteTimeout:      cfg.MayDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       cfg.MayDuration("HTTP_IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router is the mux routes are mounted on
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains in flight requests
// a clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", s.drain).Msg("http draining")
	dctx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	if err := s.srv.Shutdown(dctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
