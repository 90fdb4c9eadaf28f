// Package tree provides the JSON value tree that jptr reads and edits.
//
// A Node is a tagged variant: its Kind selects which of the scalar, object or
// array fields are meaningful. Objects keep their keys in insertion order.
//
// # Ownership
//
// Nodes are reference counted so that ownership of a value can be handed from
// a caller to a container and back out again without ambiguity:
//
//   - every constructor returns a node holding one reference owned by the caller
//   - Retain adds a reference, Release drops one
//   - when the last reference is dropped the node releases each child once
//   - Add, Put and Append take over the caller's reference to the value and
//     release whatever value previously occupied the slot
//
// Releasing a node that has no references left panics.
//
// Trees are not safe for concurrent mutation. Callers that share a tree across
// goroutines must serialize writes themselves.
package tree
