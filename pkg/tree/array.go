package tree

import (
	"fmt"
	"iter"
	"slices"
)

// Index returns element i of an array. It does not change any reference count.
func (n *Node) Index(i int) (*Node, bool) {
	if n.Kind() != Array || i < 0 || i >= len(n.vals) {
		return nil, false
	}
	return n.vals[i], true
}

// Append adds v to the end of an array, taking over the caller's reference.
func (n *Node) Append(v *Node) error {
	if n.Kind() != Array {
		return fmt.Errorf("append to %s: %w", n.Kind(), ErrKind)
	}
	if err := n.checkInsert(v); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	n.vals = append(n.vals, v)
	return nil
}

// Put stores v at index i, taking over the caller's reference. An index inside
// the array replaces and releases the previous element; i equal to the length
// appends. Any other index fails and the caller keeps v. Arrays are never
// padded.
func (n *Node) Put(i int, v *Node) error {
	if n.Kind() != Array {
		return fmt.Errorf("put [%d] in %s: %w", i, n.Kind(), ErrKind)
	}
	if i < 0 || i > len(n.vals) {
		return fmt.Errorf("put [%d] (len %d): %w", i, len(n.vals), ErrIndexRange)
	}
	if err := n.checkInsert(v); err != nil {
		return fmt.Errorf("put [%d]: %w", i, err)
	}
	if i == len(n.vals) {
		n.vals = append(n.vals, v)
		return nil
	}
	old := n.vals[i]
	n.vals[i] = v
	old.Release()
	return nil
}

// RemoveAt deletes element i of an array, shifting later elements down, and
// releases it.
func (n *Node) RemoveAt(i int) bool {
	if n.Kind() != Array || i < 0 || i >= len(n.vals) {
		return false
	}
	old := n.vals[i]
	n.vals = slices.Delete(n.vals, i, i+1)
	old.Release()
	return true
}

// Elements iterates an array's elements in order.
func (n *Node) Elements() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if n.Kind() != Array {
			return
		}
		for i, v := range n.vals {
			if !yield(i, v) {
				return
			}
		}
	}
}
