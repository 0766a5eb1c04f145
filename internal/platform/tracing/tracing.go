// Package tracing installs the process wide otel tracer provider
package tracing

import (
	"context"

	"storefront/internal/platform/config"
	"storefront/internal/platform/logger"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects the exporter; an empty Endpoint keeps the noop provider
type Config struct {
	Service  string
	Endpoint string
	Sample   float64
}

// FromConfig reads TRACE_* values from process config/env
func FromConfig(cfg config.Conf, service string) Config {
	tc := cfg.Prefix("TRACE_")
	return Config{
		Service:  service,
		Endpoint: tc.MayString("ENDPOINT", ""),
		Sample:   tc.MayFloat64("SAMPLE", 1),
	}
}

// Shutdown flushes pending spans
type Shutdown func(context.Context) error

// Setup installs a batching otlp/http provider and the w3c propagators
func Setup(ctx context.Context, cfg Config) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	if cfg.Endpoint == "" {
		logger.Get().Debug().Msg("tracing disabled; no endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, errors.Wrap(err, "otlp trace exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.Service))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clamp(cfg.Sample)))),
	)
	otel.SetTracerProvider(tp)

	logger.Get().Info().Str("endpoint", cfg.Endpoint).Float64("sample", cfg.Sample).Msg("tracing enabled")
	return tp.Shutdown, nil
}

func clamp(r float64) float64 { return min(max(r, 0), 1) }
