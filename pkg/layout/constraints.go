package layout

import (
	"fmt"
	"math"

	"github.com/go-prism/prism/pkg/graphics"
)

// SizeMode selects how a node sizes itself along one axis.
type SizeMode int

const (
	// SizeFit shrink-wraps the content. Zero value, so unsized nodes fit.
	SizeFit SizeMode = iota
	// SizeFixed uses an exact logical pixel value.
	SizeFixed
	// SizeFill takes a weighted share of the space left over after fixed
	// and fit siblings are measured.
	SizeFill
)

// SizeSpec describes the preferred extent of one axis.
// Value holds the pixel size for SizeFixed and the flex weight for SizeFill.
type SizeSpec struct {
	Mode  SizeMode
	Value float64
}

// Fixed returns a spec for an exact pixel extent.
func Fixed(value float64) SizeSpec {
	return SizeSpec{Mode: SizeFixed, Value: value}
}

// Fit returns a spec that shrink-wraps content.
func Fit() SizeSpec {
	return SizeSpec{Mode: SizeFit}
}

// Fill returns a spec that takes a weighted share of the remaining space.
func Fill(weight float64) SizeSpec {
	if weight <= 0 {
		weight = 1
	}
	return SizeSpec{Mode: SizeFill, Value: weight}
}

// String returns a human-readable representation of the size spec.
func (s SizeSpec) String() string {
	switch s.Mode {
	case SizeFixed:
		return fmt.Sprintf("fixed(%g)", s.Value)
	case SizeFill:
		return fmt.Sprintf("fill(%g)", s.Value)
	default:
		return "fit"
	}
}

// Unbounded marks a constraint axis with no upper limit.
const Unbounded = math.MaxFloat64

// BoxConstraints is the parent-supplied sizing contract for a measure pass.
// Max values may be Unbounded; all values are non-negative after Normalize.
type BoxConstraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that admit exactly the given size.
func Tight(size graphics.Size) BoxConstraints {
	return BoxConstraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints bounded above by the given size with no minimum.
func Loose(size graphics.Size) BoxConstraints {
	return BoxConstraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// UnboundedConstraints returns constraints with no limits at all.
func UnboundedConstraints() BoxConstraints {
	return BoxConstraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Normalize clamps negative values to zero and enforces min <= max.
// Zero or negative available space collapses to zero rather than failing.
func (c BoxConstraints) Normalize() BoxConstraints {
	c.MinWidth = math.Max(0, c.MinWidth)
	c.MinHeight = math.Max(0, c.MinHeight)
	c.MaxWidth = math.Max(c.MinWidth, math.Max(0, c.MaxWidth))
	c.MaxHeight = math.Max(c.MinHeight, math.Max(0, c.MaxHeight))
	return c
}

// HasBoundedWidth reports whether the width has a finite upper limit.
func (c BoxConstraints) HasBoundedWidth() bool {
	return c.MaxWidth < Unbounded
}

// HasBoundedHeight reports whether the height has a finite upper limit.
func (c BoxConstraints) HasBoundedHeight() bool {
	return c.MaxHeight < Unbounded
}

// Constrain clamps a size into the constraint box.
func (c BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// Deflate shrinks the constraints by the given insets, for measuring content
// inside padding.
func (c BoxConstraints) Deflate(insets graphics.EdgeInsets) BoxConstraints {
	deflated := BoxConstraints{
		MinWidth:  c.MinWidth - insets.Horizontal(),
		MinHeight: c.MinHeight - insets.Vertical(),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if c.HasBoundedWidth() {
		deflated.MaxWidth = c.MaxWidth - insets.Horizontal()
	}
	if c.HasBoundedHeight() {
		deflated.MaxHeight = c.MaxHeight - insets.Vertical()
	}
	return deflated.Normalize()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
