package repo

import (
	"context"
	"time"

	"storefront/internal/services/api/catalog/domain"

	"github.com/patrickmn/go-cache"
)

// Cached keeps loaded nodes in memory for a while
// nodes are read only once loaded, so hits are shared between requests
type Cached struct {
	inner domain.Loader
	cache *cache.Cache
}

var _ domain.Loader = (*Cached)(nil)

// NewCached wraps inner; ttl <= 0 disables caching
func NewCached(inner domain.Loader, ttl, cleanup time.Duration) domain.Loader {
	if ttl <= 0 {
		return inner
	}
	return &Cached{inner: inner, cache: cache.New(ttl, cleanup)}
}

// Node implements domain.Loader; misses and errors are never cached
func (c *Cached) Node(ctx context.Context, id string) (*domain.Node, error) {
	if v, ok := c.cache.Get(id); ok {
		return v.(*domain.Node), nil
	}
	n, err := c.inner.Node(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(id, n, cache.DefaultExpiration)
	return n, nil
}

// Flush drops every cached node
func (c *Cached) Flush() { c.cache.Flush() }

// Len reports the number of cached nodes
func (c *Cached) Len() int { return c.cache.ItemCount() }
