package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Method(method, path string, h Handler)
	Get(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))

	// Mux is the handler serving everything registered so far
	Mux() http.Handler
}

// AdaptChi exposes a chi router as a Router
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

type chiRouter struct{ r chi.Router }

func (c chiRouter) Method(m, p string, h Handler) { c.r.Method(m, p, http.HandlerFunc(h)) }
func (c chiRouter) Get(p string, h Handler)       { c.Method(http.MethodGet, p, h) }
func (c chiRouter) Head(p string, h Handler)      { c.Method(http.MethodHead, p, h) }
func (c chiRouter) Options(p string, h Handler)   { c.Method(http.MethodOptions, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() http.Handler                         { return c.r }

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(sub chi.Router) { fn(chiRouter{sub}) })
}

// URLParam returns a path parameter matched by the router, empty when absent
func URLParam(r *http.Request, key string) string { return chi.URLParam(r, key) }
