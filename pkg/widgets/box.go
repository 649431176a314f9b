package widgets

import (
	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
	"github.com/go-prism/prism/pkg/rendering"
)

// BoxBuilder configures a leaf node: a sized rectangle with an optional
// background fill and an optional custom paint callback. Boxes are the
// basic building block for colored regions, spacers, and custom-drawn
// content.
type BoxBuilder struct {
	style layout.Style
	paint layout.PaintFunc
}

// Box creates a leaf builder. With no configuration it measures to zero
// and paints nothing.
func Box() *BoxBuilder {
	return &BoxBuilder{}
}

// Spacer creates a leaf that expands to absorb free space along the
// enclosing flex node's main axis.
func Spacer() *BoxBuilder {
	return &BoxBuilder{style: layout.Style{
		Width:  layout.Fill(1),
		Height: layout.Fill(1),
	}}
}

// Width sets the horizontal sizing rule.
func (b *BoxBuilder) Width(spec layout.SizeSpec) *BoxBuilder {
	b.style.Width = spec
	return b
}

// Height sets the vertical sizing rule.
func (b *BoxBuilder) Height(spec layout.SizeSpec) *BoxBuilder {
	b.style.Height = spec
	return b
}

// Size sets both sizing rules to fixed pixel values.
func (b *BoxBuilder) Size(width, height float64) *BoxBuilder {
	b.style.Width = layout.Fixed(width)
	b.style.Height = layout.Fixed(height)
	return b
}

// Margin sets the outer insets reserved around the box.
func (b *BoxBuilder) Margin(insets graphics.EdgeInsets) *BoxBuilder {
	b.style.Margin = insets
	return b
}

// Background fills the box's rect with a solid color.
func (b *BoxBuilder) Background(color graphics.Color) *BoxBuilder {
	b.style.Background = color
	return b
}

// OnPaint installs a custom paint callback. It runs after the background
// fill, with the box's placed rect.
func (b *BoxBuilder) OnPaint(fn func(canvas rendering.Canvas, rect graphics.Rect)) *BoxBuilder {
	b.paint = layout.PaintFunc(fn)
	return b
}

// Build appends the leaf to the layout tree and returns its node.
func (b *BoxBuilder) Build(ctx *core.BuildContext) *layout.Node {
	return ctx.Layout().Leaf(b.style, b.paint)
}
