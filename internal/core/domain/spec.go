package domain

import (
	"bytes"
	"errors"
	"io"
	"slices"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvironmentSpec is a parsed environment declaration.
type EnvironmentSpec struct {
	// Name is the environment name. It is always present and non-empty.
	Name string

	// Dependencies are the recognised entries of the dependencies sequence, in order.
	Dependencies []Dependency

	// Raw holds the exact source bytes. Hashing only ever looks at these.
	Raw []byte
}

// Hash returns the content hash of the spec's source bytes.
func (s *EnvironmentSpec) Hash() ContentHash {
	return ComputeHash(s.Raw)
}

// Dependency is one entry of a dependencies sequence: either a bare package reference
// (name[=version[=build]]) or a group of language-sub-manager references.
type Dependency struct {
	// Package is the bare reference. Empty for groups.
	Package string

	// Manager names the sub-manager of a group written as a mapping (e.g. "pip").
	// Empty for bare references and for groups written as plain nested sequences.
	Manager string

	// Group holds the sub-manager references of a group entry.
	Group []string
}

// IsGroup reports whether d is a group of sub-manager references.
func (d Dependency) IsGroup() bool {
	return d.Package == ""
}

// ParseSpec parses the first YAML document of raw. Trailing documents are ignored.
func ParseSpec(raw []byte) (*EnvironmentSpec, error) {
	root, err := loadFirstDocument(raw)
	if err != nil {
		return nil, err
	}

	name, err := documentName(root)
	if err != nil {
		return nil, err
	}

	deps, err := collectDependencies(root)
	if err != nil {
		return nil, err
	}

	return &EnvironmentSpec{
		Name:         name,
		Dependencies: deps,
		Raw:          slices.Clone(raw),
	}, nil
}

// loadFirstDocument decodes the first document of raw and returns its top-level mapping.
func loadFirstDocument(raw []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Tag(ErrParse, ErrEmptyDocument)
		}
		return nil, Tag(ErrParse, zerr.Wrap(err, ErrInvalidYAML.Error()))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, Tag(ErrParse, ErrEmptyDocument)
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, Tag(ErrParse, Detail(ErrNotAMapping, "kind", kindName(root.Kind)))
	}
	return root, nil
}

func documentName(root *yaml.Node) (string, error) {
	node := mappingValue(root, "name")
	if node == nil {
		return "", Tag(ErrParse, ErrMissingName)
	}
	if !isString(node) || node.Value == "" {
		return "", Tag(ErrParse, Detail(ErrNameNotString, "line", node.Line))
	}
	return node.Value, nil
}

// collectDependencies walks the dependencies sequence. Entries of unknown shape are skipped.
func collectDependencies(root *yaml.Node) ([]Dependency, error) {
	seq := mappingValue(root, "dependencies")
	if seq == nil || isNull(seq) {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, Tag(ErrParse, Detail(ErrDependenciesNotSequence, "line", seq.Line))
	}

	var deps []Dependency
	for _, entry := range seq.Content {
		entry = resolveAlias(entry)
		switch entry.Kind {
		case yaml.ScalarNode:
			if isString(entry) && entry.Value != "" {
				deps = append(deps, Dependency{Package: entry.Value})
			}
		case yaml.SequenceNode:
			deps = append(deps, Dependency{Group: stringItems(entry)})
		case yaml.MappingNode:
			for i := 0; i+1 < len(entry.Content); i += 2 {
				key, value := resolveAlias(entry.Content[i]), resolveAlias(entry.Content[i+1])
				if value.Kind != yaml.SequenceNode {
					continue
				}
				deps = append(deps, Dependency{Manager: key.Value, Group: stringItems(value)})
			}
		}
	}
	return deps, nil
}

func stringItems(seq *yaml.Node) []string {
	items := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		item = resolveAlias(item)
		if item.Kind == yaml.ScalarNode && isString(item) && item.Value != "" {
			items = append(items, item.Value)
		}
	}
	return items
}

// mappingValue returns the value stored under key in a mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolveAlias(mapping.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
