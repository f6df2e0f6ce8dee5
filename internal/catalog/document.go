// Package catalog implements the catalogue loader of spec.md §4.1: it
// parses a validated document (enums, types, methods) into an in-memory
// model.KnowledgeGraph, and the literal instantiator of spec.md §4.2.
//
// The document is decoded through gopkg.in/yaml.v3's Node API rather than
// into plain Go maps, because spec.md §5 requires the loader to preserve
// the catalogue's declared order (methods, ports, parameters) for later
// deterministic iteration during search; a plain map[string]any decode
// would lose that order.
package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// mappingPairs walks a YAML mapping node in document order, returning its
// keys and value nodes in parallel slices. Returns an error if n is not a
// mapping node.
func mappingPairs(n *yaml.Node) ([]string, []*yaml.Node, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("catalog: expected mapping, got kind %d at line %d", n.Kind, n.Line)
	}
	keys := make([]string, 0, len(n.Content)/2)
	vals := make([]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
		vals = append(vals, n.Content[i+1])
	}
	return keys, vals, nil
}

// sequenceItems returns the item nodes of a YAML sequence node in order.
func sequenceItems(n *yaml.Node) ([]*yaml.Node, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("catalog: expected sequence, got kind %d at line %d", n.Kind, n.Line)
	}
	return n.Content, nil
}

// field looks up a key in a mapping node's already-split pairs.
func field(keys []string, vals []*yaml.Node, name string) *yaml.Node {
	for i, k := range keys {
		if k == name {
			return vals[i]
		}
	}
	return nil
}

// isIntScalar reports whether a scalar node resolved to YAML's integer tag.
func isIntScalar(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!int" || n.Tag == "")
}

// document is the root of a parsed catalogue document (spec.md §6).
type document struct {
	Enums   *yaml.Node `yaml:"enums"`
	Types   *yaml.Node `yaml:"types"`
	Methods *yaml.Node `yaml:"methods"`
}

// parseDocument unmarshals raw catalogue bytes into the root document node
// structure, preserving key order within each section.
func parseDocument(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("catalog: empty document")
	}
	top := root.Content[0]
	keys, vals, err := mappingPairs(top)
	if err != nil {
		return nil, fmt.Errorf("catalog: top level: %w", err)
	}
	return &document{
		Enums:   field(keys, vals, "enums"),
		Types:   field(keys, vals, "types"),
		Methods: field(keys, vals, "methods"),
	}, nil
}
