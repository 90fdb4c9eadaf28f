package tree

import (
	"fmt"
	"iter"
	"slices"
)

// Get looks up key in an object. It does not change any reference count.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind() != Object {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.vals[i], true
}

// Has reports whether an object has key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Add stores v under key, taking over the caller's reference to v. A new key
// is appended after the existing ones; an existing key keeps its position and
// its previous value is released. On error the caller keeps v.
func (n *Node) Add(key string, v *Node) error {
	if n.Kind() != Object {
		return fmt.Errorf("add %q to %s: %w", key, n.Kind(), ErrKind)
	}
	if err := n.checkInsert(v); err != nil {
		return fmt.Errorf("add %q: %w", key, err)
	}
	if i, ok := n.index[key]; ok {
		old := n.vals[i]
		n.vals[i] = v
		old.Release()
		return nil
	}
	n.index[key] = len(n.keys)
	n.keys = append(n.keys, key)
	n.vals = append(n.vals, v)
	return nil
}

// Remove deletes key from an object and releases its value.
func (n *Node) Remove(key string) bool {
	if n.Kind() != Object {
		return false
	}
	i, ok := n.index[key]
	if !ok {
		return false
	}
	old := n.vals[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.vals = slices.Delete(n.vals, i, i+1)
	delete(n.index, key)
	for j := i; j < len(n.keys); j++ {
		n.index[n.keys[j]] = j
	}
	old.Release()
	return true
}

// Keys returns a copy of the object's keys in insertion order.
func (n *Node) Keys() []string {
	if n.Kind() != Object {
		return nil
	}
	return slices.Clone(n.keys)
}

// Members iterates an object's key/value pairs in insertion order.
func (n *Node) Members() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n.Kind() != Object {
			return
		}
		for i, k := range n.keys {
			if !yield(k, n.vals[i]) {
				return
			}
		}
	}
}
