package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Errors returned by container mutations and number constructors. Callers
// match them with errors.Is.
var (
	// ErrKind reports an operation applied to the wrong kind of node, such
	// as Add on an array.
	ErrKind = errors.New("wrong node kind")
	// ErrIndexRange reports an array index past the end.
	ErrIndexRange = errors.New("index out of range")
	// ErrNilValue reports a nil *Node handed to a container.
	ErrNilValue = errors.New("nil value")
	// ErrCycle reports a value that would end up inside itself.
	ErrCycle = errors.New("value contains its container")
	// ErrReleased reports use of a node whose last reference is gone.
	ErrReleased = errors.New("node already released")
	// ErrNumber reports a number that is not a valid JSON literal or is
	// not finite.
	ErrNumber = errors.New("invalid number literal")
)

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is a single JSON value. The zero value is not usable; build nodes with
// the New* constructors.
type Node struct {
	kind Kind
	refs int32

	boolean bool
	number  string // canonical JSON literal
	text    string

	// keys and index are only set for objects; vals holds object values or
	// array elements.
	keys  []string
	index map[string]int
	vals  []*Node
}

// NewNull returns a JSON null.
func NewNull() *Node {
	return &Node{kind: Null, refs: 1}
}

// NewBool returns a JSON boolean.
func NewBool(v bool) *Node {
	return &Node{kind: Bool, refs: 1, boolean: v}
}

// NewString returns a JSON string.
func NewString(v string) *Node {
	return &Node{kind: String, refs: 1, text: v}
}

// NewInt returns a JSON number holding an integer.
func NewInt(v int64) *Node {
	return &Node{kind: Number, refs: 1, number: strconv.FormatInt(v, 10)}
}

// NewFloat returns a JSON number. NaN and infinities have no JSON form and
// yield an error.
func NewFloat(v float64) (*Node, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNumber, v)
	}
	return &Node{kind: Number, refs: 1, number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
}

// NewNumber returns a JSON number from its literal text, keeping the literal
// as written (e.g. "1.50" stays "1.50").
func NewNumber(literal string) (*Node, error) {
	if !isNumberLiteral(literal) {
		return nil, fmt.Errorf("%w: %q", ErrNumber, literal)
	}
	return &Node{kind: Number, refs: 1, number: literal}, nil
}

// NewObject returns an empty JSON object.
func NewObject() *Node {
	return &Node{kind: Object, refs: 1, index: map[string]int{}}
}

// NewArray returns a JSON array holding elems. The array takes over the
// caller's reference to each element.
func NewArray(elems ...*Node) *Node {
	n := &Node{kind: Array, refs: 1, vals: make([]*Node, 0, len(elems))}
	for _, e := range elems {
		if e == nil {
			e = NewNull()
		}
		n.vals = append(n.vals, e)
	}
	return n
}

// Kind reports the variant held by n. A nil node reports Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

// IsContainer reports whether n is an object or an array.
func (n *Node) IsContainer() bool {
	k := n.Kind()
	return k == Object || k == Array
}

// Bool returns the value of a boolean node and false for every other kind.
func (n *Node) Bool() bool {
	return n.Kind() == Bool && n.boolean
}

// Text returns the value of a string node and "" for every other kind.
func (n *Node) Text() string {
	if n.Kind() != String {
		return ""
	}
	return n.text
}

// Number returns the literal of a number node and "" for every other kind.
func (n *Node) Number() string {
	if n.Kind() != Number {
		return ""
	}
	return n.number
}

// Int64 returns the number as an int64 when the literal is an integer that fits.
func (n *Node) Int64() (int64, bool) {
	if n.Kind() != Number {
		return 0, false
	}
	v, err := strconv.ParseInt(n.number, 10, 64)
	return v, err == nil
}

// Float64 returns the number as a float64.
func (n *Node) Float64() (float64, bool) {
	if n.Kind() != Number {
		return 0, false
	}
	v, err := strconv.ParseFloat(n.number, 64)
	return v, err == nil
}

// Len returns the number of members of an object or elements of an array.
func (n *Node) Len() int {
	if !n.IsContainer() {
		return 0
	}
	return len(n.vals)
}

// Retain adds a reference to n and returns it.
func (n *Node) Retain() *Node {
	if n.refs <= 0 {
		panic("tree: retain of released node")
	}
	n.refs++
	return n
}

// Release drops one reference to n. When the last reference goes, every child
// is released once and n is emptied. It reports whether n was freed.
func (n *Node) Release() bool {
	if n.refs <= 0 {
		panic("tree: release of released node")
	}
	n.refs--
	if n.refs > 0 {
		return false
	}
	for _, v := range n.vals {
		v.Release()
	}
	n.vals, n.keys, n.index = nil, nil, nil
	return true
}

// Refs returns the current reference count.
func (n *Node) Refs() int {
	if n == nil {
		return 0
	}
	return int(n.refs)
}

// Released reports whether every reference to n has been dropped.
func (n *Node) Released() bool {
	return n.Refs() <= 0
}

// String renders n as compact JSON.
func (n *Node) String() string {
	b, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(b)
}

// checkInsert validates a value about to be stored in container n.
func (n *Node) checkInsert(v *Node) error {
	if n.Released() {
		return ErrReleased
	}
	if v == nil {
		return ErrNilValue
	}
	if v.Released() {
		return fmt.Errorf("value: %w", ErrReleased)
	}
	if contains(v, n) {
		return ErrCycle
	}
	return nil
}

// contains reports whether needle is root or lives below it.
func contains(root, needle *Node) bool {
	if root == needle {
		return true
	}
	for _, v := range root.vals {
		if contains(v, needle) {
			return true
		}
	}
	return false
}

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
