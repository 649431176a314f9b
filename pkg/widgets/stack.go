package widgets

import (
	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
)

// StackBuilder configures a container node that lays out its children with
// one of the flex rules. Obtain one from [Column], [Row], or [Layers], chain
// the configuration you need, and finish with Build.
//
// Stateless: the builder appends a node to the frame's layout tree and is
// discarded. It carries no identity of its own.
type StackBuilder struct {
	kind  layout.NodeKind
	style layout.Style
}

// Column creates a builder that places children top to bottom.
func Column() *StackBuilder {
	return &StackBuilder{kind: layout.KindColumn}
}

// Row creates a builder that places children left to right.
func Row() *StackBuilder {
	return &StackBuilder{kind: layout.KindRow}
}

// Layers creates a builder that draws children on top of each other in
// call order.
func Layers() *StackBuilder {
	return &StackBuilder{kind: layout.KindStack}
}

// Width sets the horizontal sizing rule.
func (b *StackBuilder) Width(spec layout.SizeSpec) *StackBuilder {
	b.style.Width = spec
	return b
}

// Height sets the vertical sizing rule.
func (b *StackBuilder) Height(spec layout.SizeSpec) *StackBuilder {
	b.style.Height = spec
	return b
}

// Padding sets the inner insets applied before children are measured.
func (b *StackBuilder) Padding(insets graphics.EdgeInsets) *StackBuilder {
	b.style.Padding = insets
	return b
}

// Margin sets the outer insets reserved around the node.
func (b *StackBuilder) Margin(insets graphics.EdgeInsets) *StackBuilder {
	b.style.Margin = insets
	return b
}

// Spacing sets the gap inserted between consecutive children.
func (b *StackBuilder) Spacing(gap float64) *StackBuilder {
	b.style.Spacing = gap
	return b
}

// MainAlign sets how children are distributed along the main axis when
// free space remains.
func (b *StackBuilder) MainAlign(align layout.MainAxisAlignment) *StackBuilder {
	b.style.MainAxis = align
	return b
}

// CrossAlign sets how children are positioned across the main axis.
func (b *StackBuilder) CrossAlign(align layout.CrossAxisAlignment) *StackBuilder {
	b.style.CrossAxis = align
	return b
}

// Background fills the node's rect before children paint.
func (b *StackBuilder) Background(color graphics.Color) *StackBuilder {
	b.style.Background = color
	return b
}

// Clip restricts painting of children to the node's rect.
func (b *StackBuilder) Clip() *StackBuilder {
	b.style.Clip = true
	return b
}

// Build appends the container to the layout tree and runs fn to describe
// its children. It returns the node so callers can inspect the layout
// result after the frame's layout pass, typically via
// [core.BuildContext.AfterLayout].
func (b *StackBuilder) Build(ctx *core.BuildContext, fn func(ctx *core.BuildContext)) *layout.Node {
	tree := ctx.Layout()
	node := tree.Begin(b.kind, b.style)
	fn(ctx)
	tree.End()
	return node
}
