package jsonapi

import (
	"github.com/pkg/errors"
)

// Link is a JSON:API link object with the verbs the target accepts
type Link struct {
	Href  string   `json:"href"`
	Allow []string `json:"allow"`
}

// Links is the links block of a resource object
type Links struct {
	Self Link `json:"self"`
}

// Linkage references a related resource by type and id
// Attributes hold the association metadata of list linkages, never the target attributes
type Linkage struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Relationship holds the linkage data for one relationship name
type Relationship struct {
	Data []Linkage `json:"data"`
}

// Resource is a JSON:API resource object
type Resource struct {
	ID            string                   `json:"id"`
	Type          string                   `json:"type"`
	Links         Links                    `json:"links"`
	Attributes    map[string]any           `json:"attributes"`
	Relationships map[string]*Relationship `json:"relationships,omitempty"`
}

// EntryFunc renders one item; ok is false when the item is unavailable
type EntryFunc func(item Item, fs Fieldset, links LinkBuilder) (Resource, bool, error)

// Builders dispatches entry rendering by resource type
type Builders map[string]EntryFunc

// For returns the builder registered for typ or BuildEntry
func (b Builders) For(typ string) EntryFunc {
	if fn, ok := b[typ]; ok && fn != nil {
		return fn
	}
	return BuildEntry
}

// DefaultBuilders returns the builder table used for catalog documents
func DefaultBuilders() Builders {
	return Builders{"catalog": CatalogEntry}
}

// allowGET is the verb list advertised on every self link
var allowGET = []string{"GET"}

// BuildEntry is the generic entry builder
func BuildEntry(item Item, fs Fieldset, links LinkBuilder) (Resource, bool, error) {
	if !available(item) {
		return Resource{}, false, nil
	}
	id, typ := item.ID(), item.ResourceType()

	self, err := selfLinks(links, typ, id)
	if err != nil {
		return Resource{}, false, err
	}

	res := Resource{
		ID:         id,
		Type:       typ,
		Links:      self,
		Attributes: fs.Filter(typ, item.Attributes()),
	}

	for _, child := range item.Children() {
		if !available(child) {
			continue
		}
		res.link(typ, Linkage{ID: child.ID(), Type: child.ResourceType()})
	}

	for _, li := range item.ListItems() {
		if li == nil {
			continue
		}
		ref := li.RefItem()
		if !available(ref) {
			continue
		}
		res.link(li.Domain(), Linkage{
			ID:         ref.ID(),
			Type:       ref.ResourceType(),
			Attributes: li.Attributes(),
		})
	}

	return res, true, nil
}

// CatalogEntry renders catalog nodes and pins the self link to the catalog resource
// whatever type the item reports
func CatalogEntry(item Item, fs Fieldset, links LinkBuilder) (Resource, bool, error) {
	res, ok, err := BuildEntry(item, fs, links)
	if err != nil || !ok {
		return res, ok, err
	}
	self, err := selfLinks(links, "catalog", item.ID())
	if err != nil {
		return Resource{}, false, err
	}
	res.Links = self
	return res, true, nil
}

func (r *Resource) link(name string, l Linkage) {
	if r.Relationships == nil {
		r.Relationships = map[string]*Relationship{}
	}
	rel, ok := r.Relationships[name]
	if !ok {
		rel = &Relationship{}
		r.Relationships[name] = rel
	}
	rel.Data = append(rel.Data, l)
}

func selfLinks(links LinkBuilder, typ, id string) (Links, error) {
	if links == nil {
		return Links{}, errors.New("jsonapi: no link builder configured")
	}
	href, err := links.BuildLink(map[string]string{"resource": typ, "id": id})
	if err != nil {
		return Links{}, errors.Wrapf(err, "build self link for %s %s", typ, id)
	}
	return Links{Self: Link{Href: href, Allow: allowGET}}, nil
}
