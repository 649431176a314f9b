package app

import (
	"sync/atomic"
	"time"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/errors"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
	"github.com/go-prism/prism/pkg/widgets"
)

// WindowDescriptor carries the host-facing attributes of a window. It is
// consumed once at window creation; the framework never mutates it.
type WindowDescriptor struct {
	Title     string
	Width     float64
	Height    float64
	Resizable bool
	// BackgroundColor is the clear color recorded at the start of every
	// frame.
	BackgroundColor graphics.Color
}

// Window binds one pipeline to one renderer. All methods except
// RequestFrame must run on the application's frame thread; RequestFrame is
// safe from any goroutine.
type Window struct {
	desc     WindowDescriptor
	renderer rendering.Renderer
	pipeline *core.Pipeline
	root     func(*core.BuildContext)

	frameWanted atomic.Bool
	closed      atomic.Bool
	cursor      atomic.Int32
}

func newWindow(a *App, desc WindowDescriptor, renderer rendering.Renderer, root func(*core.BuildContext)) *Window {
	w := &Window{
		desc:     desc,
		renderer: renderer,
		root:     root,
	}
	w.pipeline = core.NewPipeline(core.PipelineOptions{
		Background:   desc.BackgroundColor,
		AppListeners: a.Listeners(),
		Runner:       a.runner,
		Wake: func() {
			w.frameWanted.Store(true)
			a.wake()
		},
	})
	w.frameWanted.Store(true)
	return w
}

// Descriptor returns the attributes the window was created with.
func (w *Window) Descriptor() WindowDescriptor {
	return w.desc
}

// Pipeline exposes the window's build pipeline.
func (w *Window) Pipeline() *core.Pipeline {
	return w.pipeline
}

// OnEvent registers a window-scope broadcast listener. The returned
// function removes it.
func (w *Window) OnEvent(listener core.BroadcastListener) func() {
	return w.pipeline.Listeners().Register(listener)
}

// RequestFrame marks the window as needing a new frame. Safe from any
// goroutine.
func (w *Window) RequestFrame() {
	w.frameWanted.Store(true)
}

// NeedsFrame reports whether a frame has been requested since the last
// render.
func (w *Window) NeedsFrame() bool {
	return w.frameWanted.Load() && !w.closed.Load()
}

// Dispatch queues a translated host event as a broadcast and requests a
// frame. Delivery happens at the next frame's phase boundary.
func (w *Window) Dispatch(event core.Event) {
	w.pipeline.EnqueueBroadcast(event)
	w.frameWanted.Store(true)
}

// Scroll routes a wheel delta at a scrollable identity, typically the one
// returned by the virtual list's build. It reports whether the identity
// held scroll state; on success a frame is requested.
func (w *Window) Scroll(id core.WidgetID, dx, dy float64) bool {
	if !widgets.ScrollBy(w.pipeline, id, dx, dy) {
		return false
	}
	w.frameWanted.Store(true)
	return true
}

// SetCursor records the cursor shape the window's content wants shown.
// Event listeners call it while reacting to pointer broadcasts; the host
// polls [Window.Cursor] after each frame and applies the native cursor.
func (w *Window) SetCursor(shape CursorShape) {
	w.cursor.Store(int32(shape))
}

// Cursor returns the currently requested cursor shape.
func (w *Window) Cursor() CursorShape {
	return CursorShape(w.cursor.Load())
}

// Close marks the window as closed. A closed window is skipped by the
// frame loop and dropped from its application on the next pass.
func (w *Window) Close() {
	w.closed.Store(true)
}

// Closed reports whether Close has been called.
func (w *Window) Closed() bool {
	return w.closed.Load()
}

// RenderFrame runs one full pipeline pass against the renderer's current
// surface size and submits the resulting display list. The frame request
// flag is cleared before the pass, so wakes arriving during the pass
// schedule another frame rather than getting lost.
func (w *Window) RenderFrame() error {
	w.frameWanted.Store(false)

	w.pipeline.SetViewport(w.renderer.SurfaceSize())
	list, err := w.pipeline.RunFrame(w.root)
	if err != nil {
		return err
	}

	if err := w.renderer.Submit(list); err != nil {
		return w.renderError("app.Window.Submit", err)
	}
	if err := w.renderer.Present(); err != nil {
		return w.renderError("app.Window.Present", err)
	}
	return nil
}

func (w *Window) renderError(op string, err error) error {
	frameErr := &errors.FrameError{
		Op:        op,
		Kind:      errors.KindRender,
		Err:       err,
		Timestamp: time.Now(),
	}
	errors.Report(frameErr)
	return frameErr
}
