// Package http serves the liveness, readiness and build endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/core/version"
	"storefront/internal/modkit"
	"storefront/internal/modkit/httpkit"
)

// Pinger is a backend that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Check is one readiness dependency; a nil Pinger reports skipped
type Check struct {
	Name   string
	Pinger Pinger
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check

	// Modules lists what is mounted, nil omits the list
	Modules func() []modkit.Mounted

	// ReadyTimeout bounds all checks together, default 2s
	ReadyTimeout time.Duration
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := handlers(d)

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type handlers Deps

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"storefront-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck is the outcome of one dependency check
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"connection refused"`
}

// ReadyResponse is ok when every check passed, fail when any failed, degraded otherwise
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

// ServiceResponse names the service and what it mounts
type ServiceResponse struct {
	Name    string           `json:"name"    example:"storefront-api"`
	Started string           `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64            `json:"uptime"  example:"300"`
	Modules []modkit.Mounted `json:"modules,omitempty"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: stamp(h.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// @Summary Readiness of backing stores
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(h.Checks)), Now: stamp(time.Now())}
	if len(h.Checks) == 0 {
		out.Status = "degraded"
	}
	for _, c := range h.Checks {
		rc := ReadyCheck{Name: c.Name, Status: "ok"}
		switch {
		case c.Pinger == nil:
			rc.Status = "skipped"
		default:
			if err := c.Pinger.Ping(ctx); err != nil {
				rc.Status, rc.Error = "fail", err.Error()
			}
		}
		out.Checks = append(out.Checks, rc)

		switch {
		case rc.Status == "fail":
			out.Status = "fail"
		case rc.Status == "skipped" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service identity, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}
	if h.Modules != nil {
		out.Modules = h.Modules()
	}
	return out, nil
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
