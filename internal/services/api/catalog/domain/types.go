package domain

import (
	"time"

	"storefront/internal/core/jsonapi"
)

// Window is the status and validity period shared by nodes, list items and referenced items
type Window struct {
	Status int
	Start  time.Time
	End    time.Time
}

// Now is the clock used for validity windows
var Now = time.Now

// Available reports status > 0 and now inside [Start, End]; zero bounds are open
func (w Window) Available() bool {
	if w.Status <= 0 {
		return false
	}
	now := Now()
	if !w.Start.IsZero() && now.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && now.After(w.End) {
		return false
	}
	return true
}

// Node is a catalog tree node
type Node struct {
	NodeID   string
	ParentID string
	Code     string
	Label    string
	URL      string
	Target   string
	Config   map[string]any
	Window   Window
	Modified time.Time

	Kids  []*Node
	Lists []*ListRef

	// kidTotal is the child count before paging; zero means len(Kids)
	kidTotal int
}

var _ jsonapi.Item = (*Node)(nil)

// ID implements jsonapi.Item
func (n *Node) ID() string { return n.NodeID }

// ResourceType implements jsonapi.Item
func (n *Node) ResourceType() string { return ResourceCatalog }

// Available implements jsonapi.Item
func (n *Node) Available() bool { return n.Window.Available() }

// Attributes implements jsonapi.Item
func (n *Node) Attributes() map[string]any {
	attrs := map[string]any{
		"catalog.id":          n.NodeID,
		"catalog.parentid":    n.ParentID,
		"catalog.code":        n.Code,
		"catalog.label":       n.Label,
		"catalog.url":         n.URL,
		"catalog.target":      n.Target,
		"catalog.config":      n.config(),
		"catalog.status":      n.Window.Status,
		"catalog.hasChildren": n.KidTotal() > 0,
	}
	if !n.Modified.IsZero() {
		attrs["catalog.mtime"] = n.Modified.UTC().Format(time.DateTime)
	}
	return attrs
}

// KidTotal is the number of children before any paging
func (n *Node) KidTotal() int {
	if n.kidTotal > 0 {
		return n.kidTotal
	}
	return len(n.Kids)
}

// Paged returns a shallow copy whose Kids hold the window [offset, offset+limit)
// n is returned as is when the window covers every child
func (n *Node) Paged(offset, limit int) *Node {
	if n == nil || (offset == 0 && len(n.Kids) <= limit) {
		return n
	}
	c := *n
	c.kidTotal = n.KidTotal()
	lo := min(offset, len(n.Kids))
	hi := min(lo+limit, len(n.Kids))
	c.Kids = n.Kids[lo:hi:hi]
	return &c
}

func (n *Node) config() map[string]any {
	if n.Config == nil {
		return map[string]any{}
	}
	return n.Config
}

// Children implements jsonapi.Item
func (n *Node) Children() []jsonapi.Item {
	if len(n.Kids) == 0 {
		return nil
	}
	out := make([]jsonapi.Item, 0, len(n.Kids))
	for _, k := range n.Kids {
		if k != nil {
			out = append(out, k)
		}
	}
	return out
}

// ListItems implements jsonapi.Item
func (n *Node) ListItems() []jsonapi.ListItem {
	if len(n.Lists) == 0 {
		return nil
	}
	out := make([]jsonapi.ListItem, 0, len(n.Lists))
	for _, l := range n.Lists {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// ListRef associates a node with an item of another domain
type ListRef struct {
	ListID    string
	RefDomain string
	Type      string
	RefID     string
	Position  int
	Config    map[string]any
	Window    Window

	// Ref is nil when the referenced item was not loaded
	Ref *Ref
}

var _ jsonapi.ListItem = (*ListRef)(nil)

// Domain implements jsonapi.ListItem
func (l *ListRef) Domain() string { return l.RefDomain }

// RefItem implements jsonapi.ListItem; a missing target is a nil interface
func (l *ListRef) RefItem() jsonapi.Item {
	if l.Ref == nil {
		return nil
	}
	return l.Ref
}

// Available implements jsonapi.ListItem
func (l *ListRef) Available() bool { return l.Window.Available() }

// Attributes implements jsonapi.ListItem
func (l *ListRef) Attributes() map[string]any {
	cfg := l.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	return map[string]any{
		"catalog.lists.id":        l.ListID,
		"catalog.lists.domain":    l.RefDomain,
		"catalog.lists.type":      l.Type,
		"catalog.lists.refid":     l.RefID,
		"catalog.lists.position":  l.Position,
		"catalog.lists.config":    cfg,
		"catalog.lists.datestart": formatDate(l.Window.Start),
		"catalog.lists.dateend":   formatDate(l.Window.End),
		"catalog.lists.status":    l.Window.Status,
	}
}

// Ref is a referenced item such as an attribute, media, text or product
// its attributes are the stored columns keyed as <domain>.<column>
type Ref struct {
	RefID  string
	Domain string
	Attrs  map[string]any
	Window Window
}

var _ jsonapi.Item = (*Ref)(nil)

// ID implements jsonapi.Item
func (r *Ref) ID() string { return r.RefID }

// ResourceType implements jsonapi.Item
func (r *Ref) ResourceType() string { return r.Domain }

// Available implements jsonapi.Item
func (r *Ref) Available() bool { return r.Window.Available() }

// Attributes implements jsonapi.Item
func (r *Ref) Attributes() map[string]any {
	out := make(map[string]any, len(r.Attrs))
	for k, v := range r.Attrs {
		out[k] = v
	}
	return out
}

// Children implements jsonapi.Item
func (r *Ref) Children() []jsonapi.Item { return nil }

// ListItems implements jsonapi.Item
func (r *Ref) ListItems() []jsonapi.ListItem { return nil }

// formatDate renders a bound the way the list attributes carry it, nil when open
func formatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.DateTime)
}
