// Package domain holds DTOs, item types and ports for the catalog JSON:API
package domain

import "storefront/internal/core/jsonapi"

// ResourceCatalog is the only resource type served by this module
const ResourceCatalog = "catalog"

// Page bounds
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Query is the validated query string of a catalog request
type Query struct {
	Resource  string            `query:"resource" validate:"omitempty,rtype" example:"catalog"`
	ID        string            `query:"id" validate:"omitempty,max=64,printascii" example:"12"`
	Related   string            `query:"related" validate:"omitempty,rtype"`
	RelatedID string            `query:"relatedid" validate:"omitempty,max=64,printascii"`
	Filter    string            `query:"filter" validate:"omitempty,max=1024"`
	Sort      string            `query:"sort" validate:"omitempty,max=256"`
	Include   string            `query:"include" validate:"omitempty,max=256"`
	Offset    int               `query:"page[offset]"`
	Limit     int               `query:"page[limit]"`
	Fields    map[string]string `query:"fields"`
	Pretty    bool              `query:"pretty"`
}

// Page returns the clamped offset and limit used to window a node's children
func (q Query) Page() (offset, limit int) {
	offset = max(q.Offset, 0)
	limit = q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	return offset, min(max(limit, 1), MaxLimit)
}

// Type returns the requested resource type, catalog when unset
func (q Query) Type() string {
	if q.Resource == "" {
		return ResourceCatalog
	}
	return q.Resource
}

// GetInput is everything the service needs to render one GET request
type GetInput struct {
	Query Query
	// Params are the raw flattened query parameters echoed in the self link
	Params map[string]string
	CSRF   jsonapi.CSRF
}
