package modkit

import (
	"net/http"

	"storefront/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*Built)

// Built is the result of applying options over a module's defaults
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// WithName overrides the module name
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix overrides the mount prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends mw after the module's own middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithSubrouter wraps the module router before handlers are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister attaches extra endpoints next to the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}
