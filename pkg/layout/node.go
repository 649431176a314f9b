package layout

import (
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
)

// NodeKind identifies the layout rule a node applies to its children.
type NodeKind int

const (
	// KindStack layers children on top of each other (z-order = call order).
	KindStack NodeKind = iota
	// KindRow places children left to right.
	KindRow
	// KindColumn places children top to bottom.
	KindColumn
	// KindOffset translates its single child by a fixed offset. Used by the
	// virtual list to position materialized items inside the viewport.
	KindOffset
)

// String returns a human-readable representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindStack:
		return "stack"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// PaintFunc draws a node's own content into its placed rectangle.
// It runs before the node's children are painted.
type PaintFunc func(canvas rendering.Canvas, rect graphics.Rect)

// Style carries the sizing and spacing inputs for one node.
type Style struct {
	Width     SizeSpec
	Height    SizeSpec
	Padding   graphics.EdgeInsets
	Margin    graphics.EdgeInsets
	Spacing   float64
	MainAxis  MainAxisAlignment
	CrossAxis CrossAxisAlignment
	// Background fills the placed rect before children paint.
	Background graphics.Color
	// Clip restricts painting of children to the placed rect.
	Clip bool
}

// Node is one ephemeral entry in the per-frame layout tree. Nodes are
// allocated from the tree's arena and never persist past the frame.
type Node struct {
	Kind  NodeKind
	Style Style
	// Offset is the translation applied by KindOffset nodes.
	Offset graphics.Offset
	// PaintFn draws custom content for this node, if any.
	PaintFn PaintFunc

	children []*Node

	// Measure pass output.
	size graphics.Size
	// Placement pass output.
	rect graphics.Rect
	// Content extent before clamping to the node's own size. Drives the
	// overflow flags and scroll metrics.
	contentSize graphics.Size
	// OverflowX reports content wider than the node after placement.
	OverflowX bool
	// OverflowY reports content taller than the node after placement.
	OverflowY bool
}

// Size returns the measured size of the node.
func (n *Node) Size() graphics.Size {
	return n.size
}

// Rect returns the final placed rectangle of the node.
func (n *Node) Rect() graphics.Rect {
	return n.rect
}

// ContentSize returns the un-clamped extent of the node's content.
func (n *Node) ContentSize() graphics.Size {
	return n.contentSize
}

// Children returns the node's children in declaration order.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) reset() {
	*n = Node{children: n.children[:0]}
}

// Tree builds and owns the per-frame layout node tree. Nodes come from an
// internal arena that is bulk-reset at the start of each frame; per-node
// deallocation never happens.
type Tree struct {
	pool []*Node
	used int
	open []*Node
	root *Node
}

// Reset recycles all nodes and begins an empty tree for a new frame.
// Pooled nodes are reused in bulk; nothing is freed per node.
func (t *Tree) Reset() {
	t.used = 0
	t.open = t.open[:0]
	t.root = nil
}

// alloc returns a recycled or fresh node from the arena.
func (t *Tree) alloc() *Node {
	if t.used < len(t.pool) {
		node := t.pool[t.used]
		t.used++
		node.reset()
		return node
	}
	node := &Node{}
	t.pool = append(t.pool, node)
	t.used++
	return node
}

// Begin opens a container node; subsequent Begin/Leaf calls nest inside it
// until the matching End.
func (t *Tree) Begin(kind NodeKind, style Style) *Node {
	node := t.alloc()
	node.Kind = kind
	node.Style = style
	t.attach(node)
	t.open = append(t.open, node)
	return node
}

// End closes the most recently opened container.
func (t *Tree) End() {
	if len(t.open) == 0 {
		return
	}
	t.open = t.open[:len(t.open)-1]
}

// Leaf adds a childless node to the current container.
func (t *Tree) Leaf(style Style, paint PaintFunc) *Node {
	node := t.alloc()
	node.Kind = KindStack
	node.Style = style
	node.PaintFn = paint
	t.attach(node)
	return node
}

// BeginOffset opens an offset node translating its content by the given
// amount.
func (t *Tree) BeginOffset(offset graphics.Offset) *Node {
	node := t.alloc()
	node.Kind = KindOffset
	node.Offset = offset
	t.attach(node)
	t.open = append(t.open, node)
	return node
}

func (t *Tree) attach(node *Node) {
	if len(t.open) == 0 {
		if t.root == nil {
			t.root = node
		} else {
			// Multiple top-level nodes get an implicit stack root.
			implicit := t.alloc()
			implicit.Kind = KindStack
			implicit.children = append(implicit.children, t.root, node)
			t.root = implicit
		}
		return
	}
	parent := t.open[len(t.open)-1]
	parent.children = append(parent.children, node)
}

// Root returns the top of the built tree, or nil for an empty frame.
func (t *Tree) Root() *Node {
	return t.root
}

// Depth returns the current open-container nesting depth.
func (t *Tree) Depth() int {
	return len(t.open)
}
