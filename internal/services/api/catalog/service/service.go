// Package service renders catalog JSON:API documents
package service

import (
	"context"
	"net/http"
	"slices"

	"storefront/internal/core/jsonapi"
	perr "storefront/internal/platform/errors"
	"storefront/internal/platform/logger"
	str "storefront/internal/platform/strings"
	"storefront/internal/services/api/catalog/domain"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("storefront/catalog")

// Service defines the service contract for the catalog
type Service interface{ domain.ServicePort }

// Config is the per process rendering setup
type Config struct {
	Composer *jsonapi.Composer
	// Prefix is echoed as meta.prefix; nil renders null
	Prefix *string
	// Resources are listed by Options
	Resources []string
}

// Svc implements the Service interface
type Svc struct {
	loader domain.Loader
	cfg    Config
}

// New creates a new catalog service
func New(loader domain.Loader, cfg Config) *Svc {
	if loader == nil {
		panic("catalog.Service requires a non nil Loader")
	}
	if cfg.Composer == nil {
		panic("catalog.Service requires a Composer")
	}
	return &Svc{loader: loader, cfg: cfg}
}

// Get renders the catalog node named by the query, or the listing document without an id
// unknown resource types are rejected with a not found error
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (jsonapi.Document, int, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Get", trace.WithAttributes(
		attribute.String("jsonapi.resource", in.Query.Type()),
		attribute.String("jsonapi.id", in.Query.ID),
		attribute.String("jsonapi.prefix", str.Deref(s.cfg.Prefix)),
	))
	defer span.End()

	if typ := in.Query.Type(); typ != domain.ResourceCatalog {
		err := perr.WithField(perr.NotFoundf("resource type %q is not served here", typ), "resource")
		span.SetStatus(codes.Error, "unknown resource type")
		return jsonapi.Document{}, http.StatusNotFound, err
	}

	req := jsonapi.Request{
		Fieldset: jsonapi.ParseFieldset(in.Query.Fields),
		Params:   in.Params,
		Prefix:   s.cfg.Prefix,
		CSRF:     in.CSRF,
	}

	if in.Query.ID != "" {
		node, err := s.loader.Node(ctx, in.Query.ID)
		switch {
		case err == nil:
			// loaders may share nodes, so paging works on a copy
			req.Item = node.Paged(in.Query.Page())
		case perr.IsCode(err, perr.ErrorCodeNotFound):
			// rendered like an absent item
			span.AddEvent("node not found")
		default:
			return s.fail(ctx, span, errors.WithStack(err))
		}
	}

	doc, status := s.cfg.Composer.Compose(req)
	if doc.HasErrors() {
		s.logFailure(ctx, span, doc, errors.New(doc.Errors[0].Title))
	}
	span.SetAttributes(attribute.Int("jsonapi.total", total(doc)))
	return doc, status, nil
}

// Options renders the resource index
func (s *Svc) Options(ctx context.Context) (jsonapi.Document, int) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.Options")
	defer span.End()

	doc, status := s.cfg.Composer.Resources(slices.Clone(s.cfg.Resources), s.cfg.Prefix)
	if doc.HasErrors() {
		s.logFailure(ctx, span, doc, errors.New(doc.Errors[0].Title))
	}
	return doc, status
}

func (s *Svc) fail(ctx context.Context, span trace.Span, err error) (jsonapi.Document, int, error) {
	doc := s.cfg.Composer.Failure(err)
	s.logFailure(ctx, span, doc, err)
	return doc, http.StatusInternalServerError, nil
}

func (s *Svc) logFailure(ctx context.Context, span trace.Span, doc jsonapi.Document, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	evt := logger.C(ctx).Error().Stack().Err(err)
	if len(doc.Errors) > 0 && doc.Errors[0].ID != "" {
		evt = evt.Str("error_id", doc.Errors[0].ID)
	}
	evt.Msg("catalog document failed")
}

func total(doc jsonapi.Document) int {
	if doc.Meta == nil {
		return 0
	}
	return doc.Meta.Total
}
