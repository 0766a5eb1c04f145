// Package http provides http transport for the catalog JSON:API
package http

import (
	stdhttp "net/http"

	"storefront/internal/core/jsonapi"
	"storefront/internal/modkit/httpkit"
	"storefront/internal/platform/logger"
	"storefront/internal/services/api/catalog/domain"
	svc "storefront/internal/services/api/catalog/service"
)

var allow = []string{stdhttp.MethodGet}

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery(r, "/", h.get, h.rejected)
	httpkit.GetQuery(r, "/catalog", h.catalog, h.rejected)
	httpkit.GetQuery(r, "/catalog/{id}", h.catalogByID, h.rejected)
	httpkit.Options(r, "/", h.options)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /jsonapi JSONAPI jsonapiGet
// @Summary Render a resource as a JSON:API document
// @Tags JSONAPI
// @Produce application/vnd.api+json
// @Param resource query string false "Resource type" default(catalog)
// @Param id query string false "Resource id"
// @Param page[offset] query int false "Offset" minimum(0)
// @Param page[limit] query int false "Limit" minimum(1) maximum(500)
// @Param pretty query bool false "Indent the body"
// @Success 200 {object} jsonapi.Document
// @Failure 400 {object} jsonapi.Document
// @Failure 404 {object} jsonapi.Document
// @Failure 500 {object} jsonapi.Document
// @Router /jsonapi [get]
func (h *handlers) get(r *stdhttp.Request, q domain.Query) httpkit.Response {
	return h.render(r, q)
}

// swagger:route GET /jsonapi/catalog JSONAPI jsonapiCatalog
// @Summary Catalog listing document
// @Tags JSONAPI
// @Produce application/vnd.api+json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/catalog [get]
func (h *handlers) catalog(r *stdhttp.Request, q domain.Query) httpkit.Response {
	q.Resource = domain.ResourceCatalog
	return h.render(r, q)
}

// swagger:route GET /jsonapi/catalog/{id} JSONAPI jsonapiCatalogNode
// @Summary Catalog node with children, list items and included items
// @Tags JSONAPI
// @Produce application/vnd.api+json
// @Param id path string true "Catalog node id"
// @Param fields[catalog] query string false "Sparse fieldset"
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/catalog/{id} [get]
func (h *handlers) catalogByID(r *stdhttp.Request, q domain.Query) httpkit.Response {
	q.Resource = domain.ResourceCatalog
	q.ID = httpkit.URLParam(r, "id")
	return h.render(r, q)
}

// swagger:route OPTIONS /jsonapi JSONAPI jsonapiOptions
// @Summary List the available resources
// @Tags JSONAPI
// @Produce application/vnd.api+json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi [options]
func (h *handlers) options(r *stdhttp.Request) httpkit.Response {
	doc, status := h.svc.Options(r.Context())
	return httpkit.Doc(status, doc, httpkit.DocOptions{
		Allow:  allow,
		Pretty: httpkit.Flag(r, "pretty"),
	})
}

func (h *handlers) render(r *stdhttp.Request, q domain.Query) httpkit.Response {
	params := httpkit.QueryParams(r)
	params["resource"] = q.Type()
	if q.ID != "" {
		params["id"] = q.ID
	}

	name, value := httpkit.CSRFToken(r)
	ctx := logger.WithRequest(r.Context(), "", q.Type()+"/"+q.ID)

	doc, status, err := h.svc.Get(ctx, domain.GetInput{
		Query:  q,
		Params: params,
		CSRF:   jsonapi.CSRF{Name: name, Value: value},
	})
	opts := httpkit.DocOptions{Allow: allow, Pretty: q.Pretty, ETag: true}
	if err != nil {
		opts.ETag = false
		return httpkit.ErrorDoc(r, err, opts)
	}
	return httpkit.Doc(status, doc, opts)
}

// rejected renders query binding failures
func (h *handlers) rejected(r *stdhttp.Request, err error) httpkit.Response {
	return httpkit.ErrorDoc(r, err, httpkit.DocOptions{Allow: allow})
}
