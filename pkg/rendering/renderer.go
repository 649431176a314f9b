package rendering

import "github.com/go-prism/prism/pkg/graphics"

// Renderer is the boundary to a concrete backend (GPU or software), chosen
// by the host application. The core only ever polls the drawable size and
// submits a finished display list; backend internals are opaque.
//
// Submit must either consume the whole list or fail without presenting
// anything: the core relies on no partial frame ever being committed.
type Renderer interface {
	// SurfaceSize reports the drawable's current logical pixel extent.
	SurfaceSize() graphics.Size
	// Submit hands a finished frame to the backend for drawing.
	Submit(list *DisplayList) error
	// Present flips the previously submitted frame to the screen.
	Present() error
}
