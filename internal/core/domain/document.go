package domain

import (
	"bytes"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PrefixField is the export field holding the absolute install path of an environment.
const PrefixField = "prefix"

// NormalizeResolved prepares an exported environment document for a lockfile: the name
// field is set to name and every prefix field is removed. Everything else, including
// key order, is kept.
func NormalizeResolved(raw []byte, name string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, Tag(ErrParse, zerr.Wrap(err, ErrInvalidYAML.Error()))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, Tag(ErrParse, ErrEmptyDocument)
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, Tag(ErrParse, Detail(ErrNotAMapping, "kind", kindName(root.Kind)))
	}

	setName(root, name)
	removeKey(root, PrefixField)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, Tag(ErrParse, zerr.Wrap(err, ErrDocumentEncodeFailed.Error()))
	}
	if err := enc.Close(); err != nil {
		return nil, Tag(ErrParse, zerr.Wrap(err, ErrDocumentEncodeFailed.Error()))
	}
	return buf.Bytes(), nil
}

// DocumentName returns the name field of the first document in raw.
func DocumentName(raw []byte) (string, error) {
	root, err := loadFirstDocument(raw)
	if err != nil {
		return "", err
	}
	return documentName(root)
}

func setName(root *yaml.Node, name string) {
	value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "name" {
			root.Content[i+1] = value
			return
		}
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"}
	root.Content = append([]*yaml.Node{key, value}, root.Content...)
}

func removeKey(root *yaml.Node, key string) {
	kept := root.Content[:0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			continue
		}
		kept = append(kept, root.Content[i], root.Content[i+1])
	}
	root.Content = kept
}
