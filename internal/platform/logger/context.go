package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyResource
)

// WithRequest annotates ctx with the request id and the rendered resource, e.g. catalog/12
// empty values are not stored
func WithRequest(ctx context.Context, reqID, resource string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if resource != "" {
		ctx = context.WithValue(ctx, keyResource, resource)
	}
	return ctx
}

// C is From over the root logger
func C(ctx context.Context) *Logger { return From(ctx, *Get()) }

// From returns base enriched with request_id, resource and trace_id from ctx
func From(ctx context.Context, base Logger) *Logger {
	b := base.With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyResource).(string); s != "" {
		b = b.Str("resource", s)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		b = b.Str("trace_id", sc.TraceID().String())
	}
	l := b.Logger()
	return &l
}
