package pointer

import (
	"errors"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// WalkFunc is called for every node visited by Walk with the pointer that
// addresses it. Returning SkipChildren skips the node's children; any other
// error stops the walk and is returned by Walk.
type WalkFunc func(p Pointer, n *tree.Node) error

// Walk visits root and every node below it depth-first, parents before
// children, object members in insertion order.
func Walk(root *tree.Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	return walk(Pointer{}, root, fn)
}

func walk(p Pointer, n *tree.Node, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	switch n.Kind() {
	case tree.Object:
		for k, v := range n.Members() {
			if err := walk(p.Append(k), v, fn); err != nil {
				return err
			}
		}
	case tree.Array:
		for i, v := range n.Elements() {
			if err := walk(p.AppendIndex(i), v, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
