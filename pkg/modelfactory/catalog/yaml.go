package catalog

import (
	"fmt"
	"maps"
	"slices"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory"
	"gopkg.in/yaml.v3"
)

// FromYAML parses a YAML catalog.
//
// The document is a mapping of template names to attribute mappings.
// Attribute values may carry one of the local tags:
//
//	!optional          modelfactory.Optional
//	!required          modelfactory.Required
//	!frozen <value>    modelfactory.Frozen(value)
//	!sequence [start]  modelfactory.Sequence(start), default 1
//	!sequence "<fmt>"  modelfactory.SequenceFormat(fmt, 1)
//	!uuid              modelfactory.UUID()
//	!now               modelfactory.Now(nil)
//
// Untagged values decode with yaml.v3's defaults: mappings become
// map[string]any and sequences []any. Aliases resolve to the anchored value,
// tags included, and "<<" merge keys fill attributes a template does not set
// itself.
func FromYAML(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	c := newCatalog()
	if len(root.Content) == 0 {
		return c, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse yaml: line %d: catalog must be a mapping of template names", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		name, body := doc.Content[i].Value, doc.Content[i+1]
		attrs, err := decodeTemplate(name, body)
		if err != nil {
			return nil, err
		}
		c.add(name, attrs)
	}
	return c, nil
}

func decodeTemplate(name string, body *yaml.Node) (map[string]any, error) {
	body = resolveAlias(body)
	attrs := map[string]any{}
	switch {
	case body.Kind == yaml.ScalarNode && body.ShortTag() == "!!null":
		return attrs, nil
	case body.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("template %s: line %d: attributes must be a mapping", name, body.Line)
	}

	if err := collectAttrs(name, body, attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// collectAttrs decodes the keys of mapping m into attrs. Keys merged in with
// "<<" only fill attributes m does not set itself.
func collectAttrs(name string, m *yaml.Node, attrs map[string]any) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		if key.ShortTag() == "!!merge" {
			merges = append(merges, value)
			continue
		}
		attr, err := decodeAttr(value)
		if err != nil {
			return fmt.Errorf("template %s: attribute %s: line %d: %w", name, key.Value, value.Line, err)
		}
		attrs[key.Value] = attr
	}

	for _, value := range merges {
		if err := mergeAttrs(name, value, attrs); err != nil {
			return err
		}
	}
	return nil
}

// mergeAttrs applies a "<<" value: a mapping or a sequence of mappings,
// where earlier mappings take precedence.
func mergeAttrs(name string, value *yaml.Node, attrs map[string]any) error {
	value = resolveAlias(value)
	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = sources[:0]
		for _, item := range value.Content {
			sources = append(sources, resolveAlias(item))
		}
	}

	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("template %s: line %d: merge value must be a mapping", name, src.Line)
		}
		base := map[string]any{}
		if err := collectAttrs(name, src, base); err != nil {
			return err
		}
		for k, v := range base {
			if _, ok := attrs[k]; !ok {
				attrs[k] = v
			}
		}
	}
	return nil
}

func decodeAttr(n *yaml.Node) (modelfactory.Attr, error) {
	n = resolveAlias(n)
	switch n.Tag {
	case TagOptional:
		return modelfactory.Optional, nil
	case TagRequired:
		return modelfactory.Required, nil
	case TagUUID:
		return modelfactory.UUID(), nil
	case TagNow:
		return modelfactory.Now(nil), nil
	case TagFrozen:
		v, err := decodeValue(untagged(n))
		if err != nil {
			return modelfactory.Attr{}, err
		}
		return modelfactory.Frozen(v), nil
	case TagSequence:
		return decodeSequence(untagged(n))
	}

	if isLocalTag(n.Tag) {
		return modelfactory.Attr{}, fmt.Errorf("%w %s", ErrUnknownTag, n.Tag)
	}
	v, err := decodeValue(n)
	if err != nil {
		return modelfactory.Attr{}, err
	}
	return modelfactory.Default(v), nil
}

func decodeSequence(n *yaml.Node) (modelfactory.Attr, error) {
	v, err := decodeValue(n)
	if err != nil {
		return modelfactory.Attr{}, err
	}
	switch start := v.(type) {
	case nil:
		return modelfactory.Sequence(1), nil
	case int:
		return modelfactory.Sequence(start), nil
	case string:
		return modelfactory.SequenceFormat(start, 1), nil
	default:
		return modelfactory.Attr{}, fmt.Errorf("%s expects an integer start or a format string, got %T", TagSequence, v)
	}
}

func decodeValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// resolveAlias follows alias nodes to the node they refer to.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// untagged returns a copy of n with its explicit tag removed so the value
// resolves as if written without it.
func untagged(n *yaml.Node) *yaml.Node {
	c := *n
	c.Tag = ""
	c.Style &^= yaml.TaggedStyle
	return &c
}

// isLocalTag reports whether tag is a "!name" tag rather than a core "!!" tag.
func isLocalTag(tag string) bool {
	return len(tag) > 1 && tag[0] == '!' && tag[1] != '!'
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
