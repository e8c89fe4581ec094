package modelfactory

import (
	"maps"
	"slices"
)

// Attributes is a set of attribute values keyed by name.
// It is both the override set passed to Build and the merged set handed to
// constructors.
type Attributes map[string]any

// Template is an immutable set of attribute defaults.
type Template struct {
	attrs map[string]Attr
}

// NewTemplate builds a Template from attrs. Values that are not an Attr are
// registered as Default values. The map and every Default collection are
// copied, so later changes to attrs do not reach the template.
func NewTemplate(attrs map[string]any) Template {
	t := Template{attrs: make(map[string]Attr, len(attrs))}
	for k, v := range attrs {
		a := asAttr(v)
		if a.kind == KindDefault {
			a.value = shallowCopy(a.value)
		}
		t.attrs[k] = a
	}
	return t
}

// Get returns the attribute registered under key.
func (t Template) Get(key string) (Attr, bool) {
	a, ok := t.attrs[key]
	return a, ok
}

// Has reports whether the template defines key.
func (t Template) Has(key string) bool {
	_, ok := t.attrs[key]
	return ok
}

// Keys returns the attribute keys in sorted order.
func (t Template) Keys() []string {
	return slices.Sorted(maps.Keys(t.attrs))
}

// Len returns the number of attributes.
func (t Template) Len() int {
	return len(t.attrs)
}

// Attrs returns a copy of the attribute map.
func (t Template) Attrs() map[string]Attr {
	return maps.Clone(t.attrs)
}
