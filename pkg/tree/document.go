package tree

// Document is a mutable slot owning one reference to a root node. It is what
// lets a write at the empty pointer replace the whole value.
type Document struct {
	root *Node
}

// NewDocument takes over the caller's reference to root. root may be nil.
func NewDocument(root *Node) *Document {
	return &Document{root: root}
}

// Root returns the current root without adding a reference.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Replace installs n as the root, taking over the caller's reference, and
// releases the previous root once.
func (d *Document) Replace(n *Node) {
	old := d.root
	d.root = n
	if old != nil {
		old.Release()
	}
}

// Close releases the root and leaves the document empty.
func (d *Document) Close() {
	if d == nil || d.root == nil {
		return
	}
	d.root.Release()
	d.root = nil
}
