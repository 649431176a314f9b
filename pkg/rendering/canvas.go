// Package rendering defines the drawing surface abstraction and the display
// list produced by a frame.
//
// The core never draws directly. During the paint phase it records operations
// through the [Canvas] interface into a [DisplayList], an immutable, ordered
// sequence of draw instructions. The host application hands that list to
// whatever [Renderer] backend it chose; the core makes no assumption about
// backend internals.
package rendering

import (
	"image"

	"github.com/go-prism/prism/pkg/graphics"
)

// Canvas is the drawing surface interface. Implementations include the
// recording canvas backing [PictureRecorder] and backend rasterizers.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()
	// Restore pops the most recently saved state.
	Restore()
	// Translate shifts the origin by (dx, dy).
	Translate(dx, dy float64)
	// ClipRect intersects the clip region with the given rectangle.
	ClipRect(rect graphics.Rect)
	// Clear fills the whole surface with a color.
	Clear(color graphics.Color)
	// DrawRect fills or strokes a rectangle.
	DrawRect(rect graphics.Rect, paint Paint)
	// DrawLine draws a line between two points.
	DrawLine(start, end graphics.Offset, paint Paint)
	// DrawImage draws an image with its top-left corner at position.
	DrawImage(img image.Image, position graphics.Offset)
	// Size returns the logical size of the surface.
	Size() graphics.Size
}

// PaintStyle selects between filling and stroking.
type PaintStyle int

const (
	// PaintStyleFill fills the shape's interior.
	PaintStyleFill PaintStyle = iota
	// PaintStyleStroke draws the shape's outline.
	PaintStyleStroke
)

// Paint describes how a shape is drawn.
type Paint struct {
	Color       graphics.Color
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint with the given color.
func FillPaint(color graphics.Color) Paint {
	return Paint{Color: color, Style: PaintStyleFill}
}

// StrokePaint returns a stroke paint with the given color and width.
func StrokePaint(color graphics.Color, width float64) Paint {
	return Paint{Color: color, Style: PaintStyleStroke, StrokeWidth: width}
}
