package tree

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
)

// FromGo builds a tree from plain Go values: nil, bool, strings, integer and
// float kinds, json.Number, map[string]any, []any and their typed
// equivalents. Map keys are sorted since Go maps carry no order. Values with
// a text form, such as time.Time (RFC 3339) and TOML local dates and times,
// become strings.
func FromGo(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return t.Clone(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String())
	case int:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case float64:
		return NewFloat(t)
	case map[string]any:
		obj := NewObject()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			child, err := FromGo(t[k])
			if err != nil {
				obj.Release()
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			_ = obj.Add(k, child)
		}
		return obj, nil
	case []any:
		arr := NewArray()
		for i, e := range t {
			child, err := FromGo(e)
			if err != nil {
				arr.Release()
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			_ = arr.Append(child)
		}
		return arr, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%T: %w", v, err)
		}
		return NewString(string(text)), nil
	default:
		return fromReflect(reflect.ValueOf(v))
	}
}

// fromReflect handles typed containers and the remaining numeric kinds.
func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() { //nolint:exhaustive // unsupported kinds fall through to the error
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return NewNull(), nil
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewNumber(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return NewFloat(rv.Float())
	case reflect.String:
		return NewString(rv.String()), nil
	case reflect.Bool:
		return NewBool(rv.Bool()), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := FromGo(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				obj.Release()
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			_ = obj.Add(k, child)
		}
		return obj, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NewNull(), nil
		}
		arr := NewArray()
		for i := 0; i < rv.Len(); i++ {
			child, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				arr.Release()
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			_ = arr.Append(child)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", rv.Type())
	}
}

// Interface converts n to plain Go values: nil, bool, int64 or float64,
// string, map[string]any and []any. Numbers that fit neither int64 nor
// float64 come back as json.Number.
func (n *Node) Interface() any {
	switch n.Kind() {
	case Null:
		return nil
	case Bool:
		return n.boolean
	case Number:
		if v, ok := n.Int64(); ok {
			return v
		}
		if v, ok := n.Float64(); ok {
			return v
		}
		return json.Number(n.number)
	case String:
		return n.text
	case Object:
		out := make(map[string]any, len(n.keys))
		for i, k := range n.keys {
			out[k] = n.vals[i].Interface()
		}
		return out
	case Array:
		out := make([]any, len(n.vals))
		for i, v := range n.vals {
			out[i] = v.Interface()
		}
		return out
	default:
		return nil
	}
}

// Clone returns a deep copy of n holding one fresh reference.
func (n *Node) Clone() *Node {
	if n == nil {
		return NewNull()
	}
	c := &Node{kind: n.kind, refs: 1, boolean: n.boolean, number: n.number, text: n.text}
	switch n.kind {
	case Object:
		c.keys = slices.Clone(n.keys)
		c.index = maps.Clone(n.index)
		fallthrough
	case Array:
		c.vals = make([]*Node, len(n.vals))
		for i, v := range n.vals {
			c.vals[i] = v.Clone()
		}
	}
	return c
}

// Equal reports whether a and b hold the same JSON value. Object member order
// is ignored and numbers compare by value.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case Number:
		if a.number == b.number {
			return true
		}
		af, aok := a.Float64()
		bf, bok := b.Float64()
		return aok && bok && af == bf
	case String:
		return a.text == b.text
	case Object:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			bv, ok := b.Get(k)
			if !ok || !Equal(a.vals[i], bv) {
				return false
			}
		}
		return true
	case Array:
		if len(a.vals) != len(b.vals) {
			return false
		}
		for i := range a.vals {
			if !Equal(a.vals[i], b.vals[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON renders n as compact JSON with object members in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(n.boolean))
	case Number:
		buf.WriteString(n.number)
	case String:
		return writeJSONString(buf, n.text)
	case Object:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.vals[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, v := range n.vals {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("marshal %s: %w", n.Kind(), ErrKind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
