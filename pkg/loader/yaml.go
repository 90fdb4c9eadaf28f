package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// maxAliasDepth bounds alias expansion while walking a YAML document.
const maxAliasDepth = 64

func loadYAML(input string) (*tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	n, err := FromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return n, nil
}

// loadMultiDocYAML decodes every document in a --- separated stream. Empty
// documents are skipped.
func loadMultiDocYAML(input string) ([]*tree.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []*tree.Node
	release := func() {
		for _, d := range docs {
			d.Release()
		}
	}
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			release()
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if isEmptyDocument(&doc) {
			continue
		}
		n, err := FromYAMLNode(&doc)
		if err != nil {
			release()
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		docs = append(docs, n)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return docs, nil
}

// isEmptyDocument reports a document with no content. Between two --- markers
// yaml.v3 yields an implicit null scalar with no text rather than no node.
func isEmptyDocument(doc *yaml.Node) bool {
	if doc.Kind != yaml.DocumentNode {
		return false
	}
	if len(doc.Content) == 0 {
		return true
	}
	if len(doc.Content) > 1 {
		return false
	}
	c := doc.Content[0]
	return c.Kind == yaml.ScalarNode && c.ShortTag() == "!!null" && c.Value == ""
}

// FromYAMLNode converts a parsed YAML node into a tree. Mapping order is
// kept, aliases are expanded and merge keys (<<) are applied.
func FromYAMLNode(node *yaml.Node) (*tree.Node, error) {
	return fromYAML(node, 0)
}

func fromYAML(node *yaml.Node, depth int) (*tree.Node, error) {
	if node == nil {
		return tree.NewNull(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return tree.NewNull(), nil
		}
		return fromYAML(node.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return nil, fmt.Errorf("line %d: aliases nested too deeply", node.Line)
		}
		return fromYAML(node.Alias, depth+1)
	case yaml.MappingNode:
		obj := tree.NewObject()
		if err := fillMapping(obj, node, depth); err != nil {
			obj.Release()
			return nil, err
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := tree.NewArray()
		for _, item := range node.Content {
			v, err := fromYAML(item, depth)
			if err != nil {
				arr.Release()
				return nil, err
			}
			if err := arr.Append(v); err != nil {
				v.Release()
				arr.Release()
				return nil, err
			}
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func fillMapping(obj *tree.Node, node *yaml.Node, depth int) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		for keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		if keyNode.ShortTag() == "!!merge" {
			if err := mergeInto(obj, valNode, depth); err != nil {
				return err
			}
			continue
		}
		v, err := fromYAML(valNode, depth)
		if err != nil {
			return err
		}
		if err := obj.Add(keyNode.Value, v); err != nil {
			v.Release()
			return err
		}
	}
	return nil
}

// mergeInto applies a << merge: keys already present are left alone.
func mergeInto(obj *tree.Node, src *yaml.Node, depth int) error {
	for src.Kind == yaml.AliasNode && src.Alias != nil {
		if depth >= maxAliasDepth {
			return fmt.Errorf("line %d: aliases nested too deeply", src.Line)
		}
		src = src.Alias
		depth++
	}
	switch src.Kind {
	case yaml.SequenceNode:
		for _, item := range src.Content {
			if err := mergeInto(obj, item, depth); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		tmp := tree.NewObject()
		defer tmp.Release()
		if err := fillMapping(tmp, src, depth); err != nil {
			return err
		}
		for k, v := range tmp.Members() {
			if obj.Has(k) {
				continue
			}
			if err := obj.Add(k, v.Retain()); err != nil {
				v.Release()
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
	}
}

func fromYAMLScalar(node *yaml.Node) *tree.Node {
	switch node.ShortTag() {
	case "!!null":
		return tree.NewNull()
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err == nil {
			return tree.NewBool(b)
		}
	case "!!int":
		if n, err := tree.NewNumber(node.Value); err == nil {
			return n
		}
		var i int64
		if err := node.Decode(&i); err == nil {
			return tree.NewInt(i)
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			if n, err := tree.NewNumber(fmt.Sprintf("%d", u)); err == nil {
				return n
			}
		}
	case "!!float":
		if n, err := tree.NewNumber(node.Value); err == nil {
			return n
		}
		var f float64
		if err := node.Decode(&f); err == nil {
			if n, err := tree.NewFloat(f); err == nil {
				return n
			}
		}
	}
	// Strings, timestamps, binary and anything JSON cannot hold natively.
	return tree.NewString(node.Value)
}
