package testing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	xdraw "golang.org/x/image/draw"

	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
)

// RasterCanvas implements [rendering.Canvas] against an in-memory NRGBA
// image. It supports the subset of drawing the framework records: solid
// rects, axis-aligned and diagonal lines, image blits, rectangular clips,
// and translation. Device scale maps logical units to pixels.
type RasterCanvas struct {
	img   *image.NRGBA
	size  graphics.Size
	scale float64

	state rasterState
	saved []rasterState
}

type rasterState struct {
	tx, ty float64
	clip   image.Rectangle
}

// NewRasterCanvas creates a rasterizer for the given logical size at the
// given device scale.
func NewRasterCanvas(size graphics.Size, scale float64) *RasterCanvas {
	bounds := image.Rect(0, 0,
		int(math.Ceil(size.Width*scale)),
		int(math.Ceil(size.Height*scale)))
	return &RasterCanvas{
		img:   image.NewNRGBA(bounds),
		size:  size,
		scale: scale,
		state: rasterState{clip: bounds},
	}
}

// Image returns the backing image. The canvas keeps drawing into it.
func (c *RasterCanvas) Image() *image.NRGBA {
	return c.img
}

func (c *RasterCanvas) Save() {
	c.saved = append(c.saved, c.state)
}

func (c *RasterCanvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.state = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.state.tx += dx
	c.state.ty += dy
}

func (c *RasterCanvas) ClipRect(rect graphics.Rect) {
	c.state.clip = c.state.clip.Intersect(c.deviceRect(rect))
}

func (c *RasterCanvas) Clear(color graphics.Color) {
	fillRect(c.img, c.img.Bounds(), color.NRGBA(), true)
}

func (c *RasterCanvas) DrawRect(rect graphics.Rect, paint rendering.Paint) {
	if paint.Style == rendering.PaintStyleStroke {
		c.strokeRect(rect, paint)
		return
	}
	device := c.deviceRect(rect).Intersect(c.state.clip)
	fillRect(c.img, device, paint.Color.NRGBA(), false)
}

func (c *RasterCanvas) strokeRect(rect graphics.Rect, paint rendering.Paint) {
	w := paint.StrokeWidth
	if w <= 0 {
		w = 1
	}
	edges := []graphics.Rect{
		{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Top + w},
		{Left: rect.Left, Top: rect.Bottom - w, Right: rect.Right, Bottom: rect.Bottom},
		{Left: rect.Left, Top: rect.Top, Right: rect.Left + w, Bottom: rect.Bottom},
		{Left: rect.Right - w, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom},
	}
	for _, edge := range edges {
		device := c.deviceRect(edge).Intersect(c.state.clip)
		fillRect(c.img, device, paint.Color.NRGBA(), false)
	}
}

func (c *RasterCanvas) DrawLine(start, end graphics.Offset, paint rendering.Paint) {
	// Bresenham over device pixels; stroke width is ignored beyond 1px.
	x0 := int(math.Round((start.X + c.state.tx) * c.scale))
	y0 := int(math.Round((start.Y + c.state.ty) * c.scale))
	x1 := int(math.Round((end.X + c.state.tx) * c.scale))
	y1 := int(math.Round((end.Y + c.state.ty) * c.scale))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	pixel := paint.Color.NRGBA()
	for {
		if (image.Point{X: x0, Y: y0}).In(c.state.clip) {
			blendPixel(c.img, x0, y0, pixel)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *RasterCanvas) DrawImage(img image.Image, position graphics.Offset) {
	bounds := img.Bounds()
	dest := image.Rect(
		int(math.Round((position.X+c.state.tx)*c.scale)),
		int(math.Round((position.Y+c.state.ty)*c.scale)),
		int(math.Round((position.X+c.state.tx+float64(bounds.Dx()))*c.scale)),
		int(math.Round((position.Y+c.state.ty+float64(bounds.Dy()))*c.scale)),
	)
	xdraw.NearestNeighbor.Scale(c.img, dest.Intersect(c.state.clip), img, bounds, xdraw.Over, nil)
}

func (c *RasterCanvas) Size() graphics.Size {
	return c.size
}

// deviceRect maps a logical rect through the current translation and scale
// into pixel space.
func (c *RasterCanvas) deviceRect(rect graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round((rect.Left+c.state.tx)*c.scale)),
		int(math.Round((rect.Top+c.state.ty)*c.scale)),
		int(math.Round((rect.Right+c.state.tx)*c.scale)),
		int(math.Round((rect.Bottom+c.state.ty)*c.scale)),
	)
}

func fillRect(img *image.NRGBA, rect image.Rectangle, pixel color.NRGBA, replace bool) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if replace {
				i := img.PixOffset(x, y)
				img.Pix[i+0] = pixel.R
				img.Pix[i+1] = pixel.G
				img.Pix[i+2] = pixel.B
				img.Pix[i+3] = pixel.A
				continue
			}
			blendPixel(img, x, y, pixel)
		}
	}
}

// blendPixel composites src over the existing pixel in non-premultiplied
// space.
func blendPixel(img *image.NRGBA, x, y int, src color.NRGBA) {
	if src.A == 0xff {
		i := img.PixOffset(x, y)
		img.Pix[i+0] = src.R
		img.Pix[i+1] = src.G
		img.Pix[i+2] = src.B
		img.Pix[i+3] = 0xff
		return
	}
	if src.A == 0 {
		return
	}
	i := img.PixOffset(x, y)
	sa := uint32(src.A)
	da := uint32(img.Pix[i+3])
	outA := sa + da*(255-sa)/255
	if outA == 0 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		return
	}
	for ch := 0; ch < 3; ch++ {
		var s uint32
		switch ch {
		case 0:
			s = uint32(src.R)
		case 1:
			s = uint32(src.G)
		default:
			s = uint32(src.B)
		}
		d := uint32(img.Pix[i+ch])
		img.Pix[i+ch] = uint8((s*sa + d*da*(255-sa)/255) / outA)
	}
	img.Pix[i+3] = uint8(outA)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Rasterize replays a display list at the given scale and returns the
// resulting image.
func Rasterize(list *rendering.DisplayList, scale float64) *image.NRGBA {
	canvas := NewRasterCanvas(list.Size(), scale)
	list.Paint(canvas)
	return canvas.Image()
}

// SnapshotPNG compares img against the golden file testdata/<name>.png.
// Set PRISM_UPDATE_SNAPSHOTS=1 to rewrite goldens instead of comparing.
func SnapshotPNG(t *testing.T, name string, img image.Image) {
	t.Helper()
	path := filepath.Join("testdata", name+".png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode snapshot %s: %v", name, err)
	}

	if os.Getenv("PRISM_UPDATE_SNAPSHOTS") == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("write snapshot %s: %v", name, err)
		}
		return
	}

	golden, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s (run with PRISM_UPDATE_SNAPSHOTS=1 to create): %v", path, err)
	}
	if !bytes.Equal(golden, buf.Bytes()) {
		t.Errorf("snapshot %s differs from golden; run with PRISM_UPDATE_SNAPSHOTS=1 to update", name)
	}
}
