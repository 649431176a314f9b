// Package app hosts the outermost runtime surface: applications, windows,
// and the frame loop that drives each window's pipeline against its
// renderer. The host embedder supplies a [rendering.Renderer] per window
// and translates native input into the event types in this package; the
// rest of the framework never touches platform APIs.
package app

import (
	"context"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/rendering"
)

// App owns the application-scope broadcast registry and the set of open
// windows. One frame thread drives all of them; Wake and RequestFrame are
// the only entry points safe from other goroutines.
type App struct {
	listeners core.ListenerRegistry
	windows   []*Window
	wakeCh    chan struct{}
	runner    func(fn func())
}

// Options configures a new application.
type Options struct {
	// Runner executes async work spawned during builds. Defaults to a
	// plain goroutine per task.
	Runner func(fn func())
}

// New creates an application with no windows.
func New(opts Options) *App {
	return &App{
		wakeCh: make(chan struct{}, 1),
		runner: opts.Runner,
	}
}

// Listeners returns the application-scope broadcast registry, shared by
// every window's pipeline.
func (a *App) Listeners() *core.ListenerRegistry {
	return &a.listeners
}

// OnEvent registers an application-scope broadcast listener. The returned
// function removes it.
func (a *App) OnEvent(listener core.BroadcastListener) func() {
	return a.listeners.Register(listener)
}

// NewWindow opens a window bound to the given renderer and root builder.
func (a *App) NewWindow(desc WindowDescriptor, renderer rendering.Renderer, root func(*core.BuildContext)) *Window {
	w := newWindow(a, desc, renderer, root)
	a.windows = append(a.windows, w)
	a.wake()
	return w
}

// Windows returns the currently open windows.
func (a *App) Windows() []*Window {
	return a.windows
}

// Broadcast queues an event on every open window and wakes the frame loop.
func (a *App) Broadcast(event core.Event) {
	for _, w := range a.windows {
		w.Dispatch(event)
	}
	a.wake()
}

// wake nudges the frame loop without blocking. Extra wakes coalesce.
func (a *App) wake() {
	select {
	case a.wakeCh <- struct{}{}:
	default:
	}
}

// Step renders every window with an outstanding frame request and prunes
// closed windows. It returns the first render error, after attempting the
// remaining windows.
func (a *App) Step() error {
	var firstErr error
	open := a.windows[:0]
	for _, w := range a.windows {
		if w.Closed() {
			continue
		}
		open = append(open, w)
		if !w.NeedsFrame() {
			continue
		}
		if err := w.RenderFrame(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.windows = open
	return firstErr
}

// Run drives the frame loop until ctx is cancelled or every window has
// closed. Render errors do not stop the loop; they are reported through
// the error handler by the window and surface again on the next explicit
// Step.
func (a *App) Run(ctx context.Context) error {
	for {
		a.Step()
		if len(a.windows) == 0 {
			return nil
		}
		if a.pendingFrames() {
			// A frame was requested during the pass; render it before
			// parking.
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.wakeCh:
		}
	}
}

func (a *App) pendingFrames() bool {
	for _, w := range a.windows {
		if w.NeedsFrame() {
			return true
		}
	}
	return false
}
