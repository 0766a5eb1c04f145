package module

import (
	"context"

	"storefront/internal/core/jsonapi"
	catalogdom "storefront/internal/services/api/catalog/domain"
	catalogsvc "storefront/internal/services/api/catalog/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

var _ catalogdom.ServicePort = adaptCatalogPort{}

// adaptCatalogPort adapts the catalog service to the domain port interface
type adaptCatalogPort struct{ svc catalogsvc.Service }

// Get implements the domain ServicePort interface
func (a adaptCatalogPort) Get(ctx context.Context, in catalogdom.GetInput) (jsonapi.Document, int, error) {
	return a.svc.Get(ctx, in)
}

// Options implements the domain ServicePort interface
func (a adaptCatalogPort) Options(ctx context.Context) (jsonapi.Document, int) {
	return a.svc.Options(ctx)
}
