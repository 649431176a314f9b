package rendering

import (
	"image"

	"github.com/go-prism/prism/pkg/graphics"
)

// DisplayList is an immutable list of drawing operations produced by one
// frame. It can be replayed onto any Canvas implementation. Ownership
// transfers to the renderer for the frame; the core never mutates a list
// after recording finishes.
type DisplayList struct {
	ops  []displayOp
	size graphics.Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the surface size recorded when the display list was created.
func (d *DisplayList) Size() graphics.Size {
	return d.size
}

// OpCount returns the number of recorded operations.
func (d *DisplayList) OpCount() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
// A single recorder is reused across frames; BeginRecording resets it.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      graphics.Size
}

// BeginRecording starts a new recording session and returns the canvas to
// draw into.
func (r *PictureRecorder) BeginRecording(size graphics.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     graphics.Size
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) ClipRect(rect graphics.Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color graphics.Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect graphics.Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end graphics.Offset, paint Paint) {
	c.recorder.append(opLine{start: start, end: end, paint: paint})
}

func (c *recordingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	c.recorder.append(opImage{img: img, position: position})
}

func (c *recordingCanvas) Size() graphics.Size {
	return c.size
}

type opSave struct{}

func (opSave) execute(canvas Canvas) {
	canvas.Save()
}

type opRestore struct{}

func (opRestore) execute(canvas Canvas) {
	canvas.Restore()
}

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas Canvas) {
	canvas.Translate(op.dx, op.dy)
}

type opClipRect struct {
	rect graphics.Rect
}

func (op opClipRect) execute(canvas Canvas) {
	canvas.ClipRect(op.rect)
}

type opClear struct {
	color graphics.Color
}

func (op opClear) execute(canvas Canvas) {
	canvas.Clear(op.color)
}

type opRect struct {
	rect  graphics.Rect
	paint Paint
}

func (op opRect) execute(canvas Canvas) {
	canvas.DrawRect(op.rect, op.paint)
}

type opLine struct {
	start, end graphics.Offset
	paint      Paint
}

func (op opLine) execute(canvas Canvas) {
	canvas.DrawLine(op.start, op.end, op.paint)
}

type opImage struct {
	img      image.Image
	position graphics.Offset
}

func (op opImage) execute(canvas Canvas) {
	canvas.DrawImage(op.img, op.position)
}
