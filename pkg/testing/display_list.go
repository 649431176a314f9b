package testing

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
)

// DisplayOp is one serialized draw operation. Tests assert on the op names
// and parameters instead of pixels when geometry is what matters.
type DisplayOp struct {
	Op     string
	Params map[string]any
}

// String formats the op compactly for failure messages.
func (op DisplayOp) String() string {
	if len(op.Params) == 0 {
		return op.Op
	}
	parts := make([]string, 0, len(op.Params))
	for _, key := range sortedKeys(op.Params) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, op.Params[key]))
	}
	return op.Op + "(" + strings.Join(parts, " ") + ")"
}

// SerializingCanvas implements [rendering.Canvas] and records every call as
// a [DisplayOp].
type SerializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewSerializingCanvas returns a recording canvas with the given logical
// size.
func NewSerializingCanvas(size graphics.Size) *SerializingCanvas {
	return &SerializingCanvas{size: size}
}

// Ops returns the recorded operations in call order.
func (c *SerializingCanvas) Ops() []DisplayOp {
	return c.ops
}

// OpNames returns just the operation names in call order.
func (c *SerializingCanvas) OpNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

func (c *SerializingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *SerializingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *SerializingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: map[string]any{"dx": round2(dx), "dy": round2(dy)},
	})
}

func (c *SerializingCanvas) ClipRect(rect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: map[string]any{"rect": serializeRect(rect)},
	})
}

func (c *SerializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: map[string]any{"color": serializeColor(color)},
	})
}

func (c *SerializingCanvas) DrawRect(rect graphics.Rect, paint rendering.Paint) {
	params := map[string]any{
		"rect":  serializeRect(rect),
		"color": serializeColor(paint.Color),
	}
	if paint.Style == rendering.PaintStyleStroke {
		params["stroke"] = round2(paint.StrokeWidth)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawRect", Params: params})
}

func (c *SerializingCanvas) DrawLine(start, end graphics.Offset, paint rendering.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: map[string]any{
			"from":  serializeOffset(start),
			"to":    serializeOffset(end),
			"color": serializeColor(paint.Color),
		},
	})
}

func (c *SerializingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	bounds := img.Bounds()
	c.ops = append(c.ops, DisplayOp{
		Op: "drawImage",
		Params: map[string]any{
			"at":     serializeOffset(position),
			"width":  bounds.Dx(),
			"height": bounds.Dy(),
		},
	})
}

func (c *SerializingCanvas) Size() graphics.Size {
	return c.size
}

func serializeRect(rect graphics.Rect) string {
	return fmt.Sprintf("[%g %g %g %g]",
		round2(rect.Left), round2(rect.Top), round2(rect.Right), round2(rect.Bottom))
}

func serializeOffset(offset graphics.Offset) string {
	return fmt.Sprintf("(%g, %g)", round2(offset.X), round2(offset.Y))
}

func serializeColor(color graphics.Color) string {
	return fmt.Sprintf("#%08x", uint32(color))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
