// Package module mounts the meta endpoints
package module

import (
	"time"

	"storefront/internal/modkit"
	"storefront/internal/modkit/httpkit"
	metahttp "storefront/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/health and /meta/service
const ServiceName = "storefront-api"

// Module serves /meta
type Module struct {
	modkit.Base
}

// New builds the meta module; postgres readiness is checked when deps.PG can ping
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	var pg metahttp.Pinger
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		pg = p
	}
	d := metahttp.Deps{
		ServiceName:  ServiceName,
		StartedAt:    time.Now(),
		Checks:       []metahttp.Check{{Name: "pg", Pinger: pg}},
		Modules:      modkit.Modules,
		ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	return &Module{Base: modkit.NewBase(b, nil, func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements modkit.Module; meta exposes none
func (m *Module) Ports() any { return nil }
