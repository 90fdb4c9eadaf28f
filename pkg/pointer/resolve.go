package pointer

import (
	"fmt"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// Ownership reports who owns the value offered to Set once it returns.
type Ownership uint8

const (
	// Retained means the write did not happen and the caller still owns the
	// value and must release it.
	Retained Ownership = iota
	// Consumed means the tree took over the caller's reference.
	Consumed
)

func (o Ownership) String() string {
	if o == Consumed {
		return "consumed"
	}
	return "retained"
}

// Get resolves path against root and returns the node found there. The node
// is not retained: it stays owned by the tree.
func Get(root *tree.Node, path string) (*tree.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.resolve(root, path)
}

// Getf formats path with args like fmt.Sprintf and then calls Get.
func Getf(root *tree.Node, format string, args ...any) (*tree.Node, error) {
	path, err := Format(format, args...)
	if err != nil {
		return nil, err
	}
	return Get(root, path)
}

// Get resolves p against root. See the package function Get.
func (p Pointer) Get(root *tree.Node) (*tree.Node, error) {
	return p.resolve(root, p.String())
}

func (p Pointer) resolve(root *tree.Node, path string) (*tree.Node, error) {
	if root == nil {
		return nil, failure(path, "no value to resolve against", nil)
	}
	cur := root
	for i, tok := range p.tokens {
		next, reason := step(cur, tok)
		if next == nil {
			return nil, failure(path, fmt.Sprintf("token %d %q: %s", i, tok, reason), nil)
		}
		cur = next
	}
	return cur, nil
}

// step looks tok up in cur. On failure it returns a nil node and the reason.
func step(cur *tree.Node, tok string) (*tree.Node, string) {
	switch cur.Kind() {
	case tree.Object:
		v, ok := cur.Get(tok)
		if !ok {
			return nil, "key not found"
		}
		return v, ""
	case tree.Array:
		idx, ok := arrayIndex(tok)
		if !ok {
			return nil, "not an array index"
		}
		v, ok := cur.Index(idx)
		if !ok {
			return nil, fmt.Sprintf("index out of range (len %d)", cur.Len())
		}
		return v, ""
	default:
		return nil, "cannot descend into " + cur.Kind().String()
	}
}

// Set installs value at path inside doc. On success the tree takes over the
// caller's reference to value (Consumed) and the node previously at that
// location is released once. The empty path replaces the document root.
//
// Intermediate containers are never created. On failure nothing in the tree
// changes and the caller keeps value (Retained).
func Set(doc *tree.Document, path string, value *tree.Node) (Ownership, error) {
	p, err := Parse(path)
	if err != nil {
		return Retained, err
	}
	return p.set(doc, path, value)
}

// Setf formats path with args like fmt.Sprintf and then calls Set.
func Setf(doc *tree.Document, value *tree.Node, format string, args ...any) (Ownership, error) {
	path, err := Format(format, args...)
	if err != nil {
		return Retained, err
	}
	return Set(doc, path, value)
}

// Set installs value at p inside doc. See the package function Set.
func (p Pointer) Set(doc *tree.Document, value *tree.Node) (Ownership, error) {
	return p.set(doc, p.String(), value)
}

func (p Pointer) set(doc *tree.Document, path string, value *tree.Node) (Ownership, error) {
	switch {
	case doc == nil:
		return Retained, failure(path, "no document", nil)
	case value == nil:
		return Retained, failure(path, "no value to set", nil)
	case value.Released():
		return Retained, failure(path, "value already released", tree.ErrReleased)
	}

	if p.IsRoot() {
		doc.Replace(value)
		return Consumed, nil
	}

	parent, err := p.Parent().resolve(doc.Root(), path)
	if err != nil {
		return Retained, err
	}

	last := p.Last()
	switch parent.Kind() {
	case tree.Object:
		err = parent.Add(last, value)
	case tree.Array:
		if last == AppendToken {
			err = parent.Append(value)
			break
		}
		idx, ok := arrayIndex(last)
		if !ok {
			return Retained, failure(path, fmt.Sprintf("last token %q: not an array index", last), nil)
		}
		err = parent.Put(idx, value)
	default:
		return Retained, failure(path, "cannot write into "+parent.Kind().String(), nil)
	}
	if err != nil {
		return Retained, failure(path, "write failed", err)
	}
	return Consumed, nil
}
