package domain

import (
	"context"

	"storefront/internal/core/jsonapi"
)

// ServicePort defines the service contract for the catalog JSON:API
type ServicePort interface {
	// Get renders a catalog document; err is set only for rejected requests
	Get(ctx context.Context, in GetInput) (doc jsonapi.Document, status int, err error)
	// Options renders the resource index
	Options(ctx context.Context) (jsonapi.Document, int)
}

// Loader reads a catalog node with its children, list items and referenced items
// a missing node is reported as perr.ErrNotFound
type Loader interface {
	Node(ctx context.Context, id string) (*Node, error)
}
