// Package net carries per request values on the context and renders transport failures
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type csrfKey struct{}

type csrfPair struct{ name, value string }

// WithRequest stores reqID where chi's RequestID middleware keeps it
// an empty id returns ctx as is
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithCSRF stores the cookie name and value; an empty name returns ctx as is
func WithCSRF(ctx context.Context, name, value string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, csrfKey{}, csrfPair{name, value})
}

// CSRF is the pair stored by WithCSRF
func CSRF(ctx context.Context) (name, value string) {
	p, _ := ctx.Value(csrfKey{}).(csrfPair)
	return p.name, p.value
}
