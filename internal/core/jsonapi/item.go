// Package jsonapi assembles JSON:API documents from hierarchical domain items
//
// The package is pure: it reads items through the Item and ListItem views,
// never mutates them, and builds every document fresh per call
package jsonapi

// Item is the read-only view of a domain entity rendered as a resource object
type Item interface {
	ID() string
	ResourceType() string
	Attributes() map[string]any
	Available() bool
	Children() []Item
	ListItems() []ListItem
}

// ListItem links an item to a possibly cross-type target and carries its own metadata
// (position, list type, dates). RefItem returns nil when the target was not loaded
type ListItem interface {
	Domain() string
	RefItem() Item
	Attributes() map[string]any
	Available() bool
}

// available is the single availability gate for primary items, children and targets
func available(it Item) bool { return it != nil && it.Available() }
