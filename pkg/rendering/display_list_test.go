package rendering

import (
	"image"
	"testing"

	"github.com/go-prism/prism/pkg/graphics"
)

// captureCanvas counts replayed operations.
type captureCanvas struct {
	calls []string
	size  graphics.Size
}

func (c *captureCanvas) Save()    { c.calls = append(c.calls, "save") }
func (c *captureCanvas) Restore() { c.calls = append(c.calls, "restore") }
func (c *captureCanvas) Translate(dx, dy float64) {
	c.calls = append(c.calls, "translate")
}
func (c *captureCanvas) ClipRect(rect graphics.Rect) {
	c.calls = append(c.calls, "clipRect")
}
func (c *captureCanvas) Clear(color graphics.Color) {
	c.calls = append(c.calls, "clear")
}
func (c *captureCanvas) DrawRect(rect graphics.Rect, paint Paint) {
	c.calls = append(c.calls, "drawRect")
}
func (c *captureCanvas) DrawLine(start, end graphics.Offset, paint Paint) {
	c.calls = append(c.calls, "drawLine")
}
func (c *captureCanvas) DrawImage(img image.Image, position graphics.Offset) {
	c.calls = append(c.calls, "drawImage")
}
func (c *captureCanvas) Size() graphics.Size { return c.size }

func TestPictureRecorder_ReplayPreservesOrder(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(graphics.Size{Width: 100, Height: 100})

	canvas.Clear(graphics.ColorWhite)
	canvas.Save()
	canvas.ClipRect(graphics.RectFromLTWH(0, 0, 50, 50))
	canvas.DrawRect(graphics.RectFromLTWH(10, 10, 20, 20), FillPaint(graphics.ColorRed))
	canvas.DrawLine(graphics.Offset{}, graphics.Offset{X: 50, Y: 50}, StrokePaint(graphics.ColorBlack, 1))
	canvas.Restore()

	list := recorder.EndRecording()
	if list.OpCount() != 6 {
		t.Fatalf("expected 6 recorded ops, got %d", list.OpCount())
	}

	replay := &captureCanvas{size: list.Size()}
	list.Paint(replay)

	want := []string{"clear", "save", "clipRect", "drawRect", "drawLine", "restore"}
	if len(replay.calls) != len(want) {
		t.Fatalf("expected %d replayed ops, got %v", len(want), replay.calls)
	}
	for i, name := range want {
		if replay.calls[i] != name {
			t.Fatalf("expected replay order %v, got %v", want, replay.calls)
		}
	}
}

func TestPictureRecorder_ListIsReplayableTwice(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(graphics.Size{Width: 10, Height: 10})
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), FillPaint(graphics.ColorBlue))
	list := recorder.EndRecording()

	first := &captureCanvas{}
	second := &captureCanvas{}
	list.Paint(first)
	list.Paint(second)

	if len(first.calls) != 1 || len(second.calls) != 1 {
		t.Fatalf("expected the list to replay identically, got %d then %d ops",
			len(first.calls), len(second.calls))
	}
}

func TestPictureRecorder_EndResetsForReuse(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(graphics.Size{Width: 10, Height: 10})
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), FillPaint(graphics.ColorBlue))
	first := recorder.EndRecording()

	canvas = recorder.BeginRecording(graphics.Size{Width: 10, Height: 10})
	second := recorder.EndRecording()

	if first.OpCount() != 1 {
		t.Fatalf("expected first list unchanged by reuse, got %d ops", first.OpCount())
	}
	if second.OpCount() != 0 {
		t.Fatalf("expected a fresh empty list on reuse, got %d ops", second.OpCount())
	}
}

func TestDisplayList_SizeMatchesRecordingSurface(t *testing.T) {
	recorder := &PictureRecorder{}
	recorder.BeginRecording(graphics.Size{Width: 320, Height: 240})
	list := recorder.EndRecording()

	if got := list.Size(); got.Width != 320 || got.Height != 240 {
		t.Fatalf("expected list size 320x240, got %gx%g", got.Width, got.Height)
	}
}
