// Package modkit wires API modules: shared deps, build options and the mount registry
package modkit

import (
	"net/http"

	"storefront/internal/modkit/httpkit"
	"storefront/internal/modkit/repokit"
	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"
	str "storefront/internal/platform/strings"
)

// Module is an API surface mounted under its own prefix
type Module interface {
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
	Prefix() string
}

// Deps are handed to every module constructor
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when postgres is disabled
	PG repokit.TxRunner
}

// Base carries the routing state every module shares
// modules embed it and fill Register with their handlers
type Base struct {
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  []func(httpkit.Router)
}

// NewBase builds the shared routing state; register runs before any WithRegister hooks
func NewBase(b Built, mws []func(http.Handler) http.Handler, register func(httpkit.Router)) Base {
	base := Base{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       append(append([]func(http.Handler) http.Handler(nil), mws...), b.Mw...),
		subrouter: b.Subrouter,
	}
	if register != nil {
		base.register = append(base.register, register)
	}
	if b.Register != nil {
		base.register = append(base.register, b.Register)
	}
	return base
}

// MountRoutes mounts the module under its prefix with its middlewares
func (b Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.mws, func(rr httpkit.Router) {
		if b.subrouter != nil {
			rr = b.subrouter(rr)
		}
		for _, fn := range b.register {
			fn(rr)
		}
	})
}

// Name returns the module name
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the route prefix
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares returns the module middlewares in mount order
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }
