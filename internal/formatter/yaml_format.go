package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent              int
	LiteralBlockStrings bool
}

// FormatYAML renders n as YAML, keeping object member order. Multi-line
// strings can be emitted as literal blocks ("|") to preserve newlines.
func FormatYAML(n *tree.Node, opts YAMLFormatOptions) (string, error) {
	node := ToYAMLNode(n)
	if opts.LiteralBlockStrings {
		applyLiteralStyle(node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToYAMLNode converts a tree into a yaml.v3 node graph.
func ToYAMLNode(n *tree.Node) *yaml.Node {
	switch n.Kind() {
	case tree.Object:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, v := range n.Members() {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToYAMLNode(v))
		}
		return out
	case tree.Array:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range n.Elements() {
			out.Content = append(out.Content, ToYAMLNode(v))
		}
		return out
	case tree.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Text()}
	case tree.Number:
		// Untagged: the encoder writes JSON number literals plain.
		return &yaml.Node{Kind: yaml.ScalarNode, Value: n.Number()}
	case tree.Bool:
		v := "false"
		if n.Bool() {
			v = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func applyLiteralStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		applyLiteralStyle(c)
	}
}
