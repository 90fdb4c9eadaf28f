package loader

import (
	"strings"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

const maxDecodeDepth = 20

// TryDecode parses a string value as serialized data (JWT, JSON, YAML,
// TOML, NDJSON). It succeeds only when the result is an object or array;
// plain words, numbers and other scalars return (nil, false).
func TryDecode(value string) (*tree.Node, bool) {
	if value == "" {
		return nil, false
	}
	n, _, err := LoadRoot(value)
	if err != nil {
		return nil, false
	}
	if !n.IsContainer() {
		n.Release()
		return nil, false
	}
	return n, true
}

// RecursiveDecode returns a copy of n in which every string holding
// serialized data is replaced by the decoded structure, recursively. n is
// left untouched; the caller owns the result.
func RecursiveDecode(n *tree.Node) *tree.Node {
	return recursiveDecode(n, 0)
}

func recursiveDecode(n *tree.Node, depth int) *tree.Node {
	if depth > maxDecodeDepth {
		return n.Clone()
	}
	switch n.Kind() {
	case tree.Object:
		out := tree.NewObject()
		for k, v := range n.Members() {
			_ = out.Add(k, recursiveDecode(v, depth+1))
		}
		return out
	case tree.Array:
		out := tree.NewArray()
		for _, v := range n.Elements() {
			_ = out.Append(recursiveDecode(v, depth+1))
		}
		return out
	case tree.String:
		decoded, ok := TryDecode(n.Text())
		if !ok {
			return n.Clone()
		}
		defer decoded.Release()
		return recursiveDecode(decoded, depth+1)
	default:
		return n.Clone()
	}
}

// ParseValue turns a command-line argument into a node: valid JSON is
// decoded, anything else becomes a JSON string.
func ParseValue(s string) *tree.Node {
	if n, err := DecodeJSON(strings.NewReader(s)); err == nil {
		return n
	}
	return tree.NewString(s)
}
