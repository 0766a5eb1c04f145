package jsonapi

type resourceKey struct{ typ, id string }

// IncludedSet collects resources keyed by (type, id) in first-insertion order
// it is request local and not safe for concurrent use
type IncludedSet struct {
	index map[resourceKey]struct{}
	items []Resource
}

// NewIncludedSet returns an empty set
func NewIncludedSet() *IncludedSet {
	return &IncludedSet{index: map[resourceKey]struct{}{}}
}

// Has reports whether (typ, id) is already present
func (s *IncludedSet) Has(typ, id string) bool {
	_, ok := s.index[resourceKey{typ, id}]
	return ok
}

// Add inserts r unless its key exists; the first insertion wins
func (s *IncludedSet) Add(r Resource) bool {
	k := resourceKey{r.Type, r.ID}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.items = append(s.items, r)
	return true
}

// Len returns the number of resources
func (s *IncludedSet) Len() int { return len(s.items) }

// Resources returns the resources in insertion order, never nil
func (s *IncludedSet) Resources() []Resource {
	out := make([]Resource, len(s.items))
	copy(out, s.items)
	return out
}

// CollectIncluded renders the list item targets of item into an IncludedSet
// hierarchical children are not included and targets are not walked further
func CollectIncluded(item Item, fs Fieldset, builders Builders, links LinkBuilder) (*IncludedSet, error) {
	set := NewIncludedSet()
	if !available(item) {
		return set, nil
	}
	for _, li := range item.ListItems() {
		if li == nil {
			continue
		}
		ref := li.RefItem()
		if !available(ref) {
			continue
		}
		typ := ref.ResourceType()
		if set.Has(typ, ref.ID()) {
			continue
		}
		res, ok, err := builders.For(typ)(ref, fs, links)
		if err != nil {
			return nil, err
		}
		if ok {
			set.Add(res)
		}
	}
	return set, nil
}
