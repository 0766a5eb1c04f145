package jsonapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// MediaType is the JSON:API content type
const MediaType = "application/vnd.api+json"

// CSRF is the token pair echoed in meta when both halves are set
type CSRF struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Meta is the document meta block
type Meta struct {
	Total          int               `json:"total"`
	Prefix         *string           `json:"prefix"`
	ContentBaseURL string            `json:"content-baseurl"`
	CSRF           *CSRF             `json:"csrf,omitempty"`
	Resources      map[string]string `json:"resources,omitempty"`
}

// DocumentLinks is the top level links block
type DocumentLinks struct {
	Self string `json:"self"`
}

// ErrorObject is one entry of the errors array
type ErrorObject struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Document is a top level JSON:API document
// Errors never coexist with Data or Included; Included is encoded as [] when empty but set
type Document struct {
	Meta     *Meta          `json:"meta,omitzero"`
	Links    *DocumentLinks `json:"links,omitzero"`
	Data     *Resource      `json:"data,omitzero"`
	Included []Resource     `json:"included,omitzero"`
	Errors   []ErrorObject  `json:"errors,omitzero"`
}

// HasErrors reports whether d is an errors document
func (d Document) HasErrors() bool { return len(d.Errors) > 0 }

// ErrorDocument returns an errors-only document
func ErrorDocument(errs ...ErrorObject) Document {
	return Document{Errors: append([]ErrorObject{}, errs...)}
}

// selfParamKeys are the query parameters echoed in the top level self link
var selfParamKeys = map[string]struct{}{
	"resource":  {},
	"id":        {},
	"related":   {},
	"relatedid": {},
	"filter":    {},
	"page":      {},
	"sort":      {},
	"include":   {},
	"fields":    {},
}

// SelfParams keeps the whitelisted parameters; nested keys such as
// page[offset] or fields[catalog] are matched by their base name
func SelfParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		base := k
		if i := strings.IndexByte(k, '['); i >= 0 {
			base = k[:i]
		}
		if _, ok := selfParamKeys[base]; ok {
			out[k] = v
		}
	}
	return out
}

// Config carries everything a Composer needs; nothing is read from globals
type Config struct {
	// ContentBaseURL resolves binary assets and is echoed as meta.content-baseurl
	ContentBaseURL string
	Links          LinkBuilder
	// Builders overrides entry rendering per type; BuildEntry is the fallback
	Builders Builders
	// NewErrorID, when set, stamps every error object with an occurrence id
	NewErrorID func() string
}

// Request is the per call input of Compose
type Request struct {
	// Item is the primary item; nil for listing responses
	Item     Item
	Fieldset Fieldset
	// Params are the flattened incoming query parameters
	Params map[string]string
	Prefix *string
	CSRF   CSRF
}

// Composer assembles documents
type Composer struct {
	cfg Config
}

// NewComposer validates cfg
func NewComposer(cfg Config) (*Composer, error) {
	if cfg.Links == nil {
		return nil, errors.New("jsonapi: composer requires a link builder")
	}
	if cfg.Builders == nil {
		cfg.Builders = DefaultBuilders()
	}
	return &Composer{cfg: cfg}, nil
}

// Compose renders req and returns the document with its HTTP status
// any failure replaces the whole document with an errors document and 500
func (c *Composer) Compose(req Request) (Document, int) {
	doc, err := c.compose(req)
	if err != nil {
		return c.Failure(err), http.StatusInternalServerError
	}
	return doc, http.StatusOK
}

func (c *Composer) compose(req Request) (Document, error) {
	self, err := c.cfg.Links.BuildLink(SelfParams(req.Params))
	if err != nil {
		return Document{}, errors.Wrap(err, "build document self link")
	}

	doc := Document{
		Meta:  c.meta(req.Prefix, req.CSRF),
		Links: &DocumentLinks{Self: self},
	}
	if !available(req.Item) {
		return doc, nil
	}

	build := c.cfg.Builders.For(req.Item.ResourceType())
	res, ok, err := build(req.Item, req.Fieldset, c.cfg.Links)
	if err != nil {
		return Document{}, err
	}
	if !ok {
		return doc, nil
	}

	inc, err := CollectIncluded(req.Item, req.Fieldset, c.cfg.Builders, c.cfg.Links)
	if err != nil {
		return Document{}, err
	}

	doc.Meta.Total = 1
	doc.Data = &res
	doc.Included = inc.Resources()
	return doc, nil
}

// Resources renders the resource index served on OPTIONS
func (c *Composer) Resources(names []string, prefix *string) (Document, int) {
	idx := make(map[string]string, len(names))
	for _, name := range names {
		href, err := c.cfg.Links.BuildLink(map[string]string{"resource": name})
		if err != nil {
			return c.Failure(errors.Wrapf(err, "build link for resource %s", name)), http.StatusInternalServerError
		}
		idx[name] = href
	}
	meta := c.meta(prefix, CSRF{})
	meta.Resources = idx
	return Document{Meta: meta}, http.StatusOK
}

// Failure renders err as an errors document
// the title is the root cause's message, the detail the wrapped chain with its stack
func (c *Composer) Failure(err error) Document {
	if err == nil {
		err = errors.New("unknown error")
	}
	obj := ErrorObject{Title: errors.Cause(err).Error(), Detail: fmt.Sprintf("%+v", err)}
	if c.cfg.NewErrorID != nil {
		obj.ID = c.cfg.NewErrorID()
	}
	return ErrorDocument(obj)
}

func (c *Composer) meta(prefix *string, csrf CSRF) *Meta {
	m := &Meta{Prefix: prefix, ContentBaseURL: c.cfg.ContentBaseURL}
	if csrf.Name != "" && csrf.Value != "" {
		m.CSRF = &CSRF{Name: csrf.Name, Value: csrf.Value}
	}
	return m
}
