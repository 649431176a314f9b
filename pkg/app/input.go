package app

import (
	"github.com/go-prism/prism/pkg/graphics"
)

// PointerKind identifies the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerMove
)

// String returns a human-readable representation of the pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	default:
		return "unknown"
	}
}

// PointerEvent is a translated host pointer event. The host delivers it
// through [Window.Dispatch]; interested widgets and window listeners pick
// it up as a broadcast on the next frame.
type PointerEvent struct {
	Kind     PointerKind
	Position graphics.Offset
}

// WheelEvent is a translated host scroll-wheel or trackpad event. The host
// usually routes it at a scrollable identity with [Window.Scroll]; the
// broadcast form exists for listeners that want raw deltas.
type WheelEvent struct {
	Position graphics.Offset
	DeltaX   float64
	DeltaY   float64
}

// KeyEvent is a translated host keyboard event.
type KeyEvent struct {
	Key     string
	Pressed bool
}

// ResizeEvent reports a change of the window's surface size. The pipeline
// picks the new extent up by polling the renderer; the broadcast lets
// application code react as well.
type ResizeEvent struct {
	Size graphics.Size
}

// CloseRequestedEvent reports that the host asked the window to close.
type CloseRequestedEvent struct{}

// CursorShape names the pointer cursor a window wants the host to show.
type CursorShape int

const (
	CursorDefault CursorShape = iota
	CursorPointer
	CursorText
	CursorResizeHorizontal
	CursorResizeVertical
)

// String returns a human-readable representation of the cursor shape.
func (s CursorShape) String() string {
	switch s {
	case CursorPointer:
		return "pointer"
	case CursorText:
		return "text"
	case CursorResizeHorizontal:
		return "resize-horizontal"
	case CursorResizeVertical:
		return "resize-vertical"
	default:
		return "default"
	}
}
