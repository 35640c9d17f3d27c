package parse

// Point is a zero-based (row, column) coordinate. Columns are measured in
// UTF-8 bytes, matching the offsets the lexer tracks.
type Point struct {
	Row    uint32
	Column uint32
}

// Before reports whether p orders strictly before q.
func (p Point) Before(q Point) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Column < q.Column
}

// Node is a single vertex of the concrete syntax tree. Leaves are individual
// source characters (kinds "space", "tab", "lf", or a "comment" run);
// composite nodes are operands ("num", "label"), instructions ("op_*"),
// recovery nodes ("ERROR"), and the "source_file" root.
type Node struct {
	kind       string
	startByte  uint32
	endByte    uint32
	startPoint Point
	endPoint   Point
	parent     *Node
	index      int
	children   []*Node
}

// Kind returns the grammar rule name of the node.
func (n *Node) Kind() string { return n.kind }

// StartByte returns the byte offset of the node's first character.
func (n *Node) StartByte() uint32 { return n.startByte }

// EndByte returns the byte offset one past the node's last character.
func (n *Node) EndByte() uint32 { return n.endByte }

// StartPoint returns the (row, column) of the node's first character.
func (n *Node) StartPoint() Point { return n.startPoint }

// EndPoint returns the (row, column) one past the node's last character.
// A node ending in a newline ends at column 0 of the following row.
func (n *Node) EndPoint() Point { return n.endPoint }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th direct child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// contains reports whether the half-open span [start, end) of the node
// covers both points.
func (n *Node) contains(start, end Point) bool {
	if start.Before(n.startPoint) {
		return false
	}
	return end.Before(n.endPoint)
}

func (n *Node) attach(child *Node) {
	child.parent = n
	child.index = len(n.children)
	n.children = append(n.children, child)
	if len(n.children) == 1 {
		n.startByte = child.startByte
		n.startPoint = child.startPoint
	}
	n.endByte = child.endByte
	n.endPoint = child.endPoint
}

// DescendantForPointRange returns the smallest node whose span contains the
// half-open range [start, end). With start == end it selects the node under
// a cursor point. The root is returned when no child covers the range; on a
// boundary between siblings the earlier sibling that still covers the range
// wins, and callers must not rely on that choice.
func (n *Node) DescendantForPointRange(start, end Point) *Node {
	current := n
descend:
	for {
		for _, child := range current.children {
			if child.contains(start, end) {
				current = child
				continue descend
			}
		}
		return current
	}
}

// Tree is the concrete syntax tree of one text buffer. Node spans are byte
// offsets into exactly the text the tree was built from.
type Tree struct {
	root   *Node
	source string
}

// RootNode returns the source_file node covering the whole buffer.
func (t *Tree) RootNode() *Node { return t.root }

// Source returns the text the tree was built from.
func (t *Tree) Source() string { return t.source }

// Text returns the raw source slice covered by the node.
func (t *Tree) Text(n *Node) string {
	return t.source[n.startByte:n.endByte]
}

// tokenRaw concatenates the node's character leaves, skipping comment runs,
// so operand decoding sees only the whitespace that carries meaning.
func (t *Tree) tokenRaw(n *Node) string {
	if len(n.children) == 0 {
		if n.kind == "comment" {
			return ""
		}
		return t.Text(n)
	}
	var raw []byte
	for _, child := range n.children {
		raw = append(raw, t.tokenRaw(child)...)
	}
	return string(raw)
}

// Cursor walks a tree in document order, mirroring the traversal interface
// of incremental parsers.
type Cursor struct {
	node *Node
}

// Walk returns a cursor positioned at the root.
func (t *Tree) Walk() *Cursor { return &Cursor{node: t.root} }

// Node returns the node the cursor currently points at.
func (c *Cursor) Node() *Node { return c.node }

// GoToFirstChild moves to the first child, reporting whether one exists.
func (c *Cursor) GoToFirstChild() bool {
	if len(c.node.children) == 0 {
		return false
	}
	c.node = c.node.children[0]
	return true
}

// GoToNextSibling moves to the next sibling, reporting whether one exists.
func (c *Cursor) GoToNextSibling() bool {
	parent := c.node.parent
	if parent == nil || c.node.index+1 >= len(parent.children) {
		return false
	}
	c.node = parent.children[c.node.index+1]
	return true
}

// GoToParent moves to the enclosing node, reporting whether one exists.
func (c *Cursor) GoToParent() bool {
	if c.node.parent == nil {
		return false
	}
	c.node = c.node.parent
	return true
}

// IgnoredKinds are the grammar-internal character tokens that carry no
// user-visible meaning on their own. The classifier walks past them when
// resolving the node under a cursor.
var IgnoredKinds = map[string]bool{
	"space": true,
	"tab":   true,
	"lf":    true,
}

// NodeAt resolves the smallest meaningful node containing the point. It
// ascends past IgnoredKinds leaves and returns nil when only the
// source_file root covers the point.
func NodeAt(t *Tree, p Point) *Node {
	n := t.RootNode().DescendantForPointRange(p, p)
	for n != nil && IgnoredKinds[n.Kind()] {
		n = n.Parent()
	}
	if n == nil || n.Kind() == "source_file" {
		return nil
	}
	return n
}
