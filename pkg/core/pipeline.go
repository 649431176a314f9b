package core

import (
	"sync"
	"time"

	"github.com/go-prism/prism/pkg/errors"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
	"github.com/go-prism/prism/pkg/rendering"
)

// buildAbort carries a fatal build error up to RunFrame through a panic, so
// a collision deep in the tree aborts the whole pass without threading an
// error through every builder.
type buildAbort struct {
	err error
}

func abortBuild(err error) {
	panic(buildAbort{err: err})
}

// Pipeline owns one window's build/layout/paint cycle: the state store, the
// per-frame layout tree and arena, event queues, and broadcast listeners.
// Exactly one build pass may be in flight per pipeline; all methods except
// the async completion path must run on the window's build thread.
type Pipeline struct {
	store    *StateStore
	tree     layout.Tree
	arena    Arena
	recorder rendering.PictureRecorder

	viewport   graphics.Size
	background graphics.Color

	building bool

	pending        map[WidgetID][]Event
	broadcastQueue []Event

	// Window-scope broadcast listeners, in registration order.
	listeners ListenerRegistry
	// Application-scope listeners, shared across windows. May be nil.
	appListeners *ListenerRegistry

	// runner executes async work. Defaults to `go fn()`; the host may swap
	// in its own scheduler.
	runner func(fn func())
	// wake asks the host to schedule a new frame, used when async results
	// or broadcasts arrive outside a pass. May be nil.
	wake func()

	// afterLayout callbacks run once placement finishes, before paint.
	// Widgets use them to read back measured geometry into persisted state.
	afterLayout []func()

	asyncMu      sync.Mutex
	asyncResults []asyncResult
}

type asyncResult struct {
	target   WidgetID
	targeted bool
	event    Event
}

// PipelineOptions configures a new pipeline.
type PipelineOptions struct {
	// Background is the clear color recorded at the start of every frame.
	Background graphics.Color
	// AppListeners attaches the application-scope broadcast registry.
	AppListeners *ListenerRegistry
	// Runner executes async work; defaults to a plain goroutine.
	Runner func(fn func())
	// Wake requests a redraw from the host event loop.
	Wake func()
}

// NewPipeline creates a pipeline with an empty state store.
func NewPipeline(opts PipelineOptions) *Pipeline {
	p := &Pipeline{
		store:        newStateStore(),
		background:   opts.Background,
		appListeners: opts.AppListeners,
		runner:       opts.Runner,
		wake:         opts.Wake,
		pending:      make(map[WidgetID][]Event),
	}
	if p.runner == nil {
		p.runner = func(fn func()) { go fn() }
	}
	return p
}

// Store exposes the pipeline's state store, mainly for tests and
// diagnostics.
func (p *Pipeline) Store() *StateStore {
	return p.store
}

// Listeners returns the window-scope broadcast listener registry.
func (p *Pipeline) Listeners() *ListenerRegistry {
	return &p.listeners
}

// SetViewport sets the logical surface size used for layout. The host calls
// this with the renderer's polled extent before each frame.
func (p *Pipeline) SetViewport(size graphics.Size) {
	p.viewport = size
}

// Viewport returns the current logical surface size.
func (p *Pipeline) Viewport() graphics.Size {
	return p.viewport
}

// EnqueueBroadcast queues a broadcast event from outside a build pass, e.g.
// from the host's input translation. It is delivered at the next frame's
// phase boundary like any other broadcast.
func (p *Pipeline) EnqueueBroadcast(event Event) {
	p.broadcastQueue = append(p.broadcastQueue, event)
	if p.wake != nil {
		p.wake()
	}
}

// QueueEvent queues a widget-local event for the identity's next build,
// from outside a pass. Input translation uses this to target a resolved
// identity surfaced during an earlier frame. If the identity is not built
// next frame the event is dropped as stale.
func (p *Pipeline) QueueEvent(id WidgetID, event Event) {
	p.pending[id] = append(p.pending[id], event)
	if p.wake != nil {
		p.wake()
	}
}

// RunFrame executes one full pass: init, build, widget-local events,
// layout, paint, broadcast delivery, state sweep. It returns the frame's
// display list, or an error when the pass aborts (identity collision,
// re-entrant build). On abort no display list is produced and persisted
// state keeps its pre-frame content wherever the pass did not reach.
func (p *Pipeline) RunFrame(root func(*BuildContext)) (list *rendering.DisplayList, err error) {
	if p.building {
		return nil, &errors.ReentrantBuildError{}
	}
	p.building = true
	defer func() { p.building = false }()

	// Init cycle: bulk-release the previous frame's transient memory and
	// fold completed async work into the event queues.
	p.arena.Reset()
	p.tree.Reset()
	p.store.beginFrame()
	p.collectAsyncResults()

	ctx := &BuildContext{
		pipeline: p,
		tree:     &p.tree,
		viewport: p.viewport,
	}
	p.afterLayout = p.afterLayout[:0]

	func() {
		defer func() {
			if r := recover(); r != nil {
				abort, ok := r.(buildAbort)
				if !ok {
					panic(r)
				}
				err = abort.err
			}
		}()
		root(ctx)
	}()
	if err != nil {
		errors.Report(&errors.FrameError{
			Op:        "core.RunFrame",
			Kind:      errors.KindBuild,
			Err:       err,
			Timestamp: time.Now(),
		})
		return nil, err
	}

	layout.Compute(&p.tree, p.viewport)
	for _, fn := range p.afterLayout {
		fn()
	}

	canvas := p.recorder.BeginRecording(p.viewport)
	canvas.Clear(p.background)
	layout.PaintTree(&p.tree, canvas)
	list = p.recorder.EndRecording()

	// Broadcast phase boundary: deliver everything queued during (or
	// before) this pass. Broadcasts raised by listeners themselves belong
	// to the next frame.
	p.deliverBroadcasts(ctx)

	p.dropStalePending()
	p.store.sweep()

	return list, nil
}

// deliverBroadcasts fans queued events out to component, window, and
// application scopes in registration order. Handled results never stop
// propagation. Broadcasts raised by the listeners themselves belong to the
// next frame, so if any were queued the host is woken to schedule one.
func (p *Pipeline) deliverBroadcasts(ctx *BuildContext) {
	queue := p.broadcastQueue
	p.broadcastQueue = nil
	for _, event := range queue {
		ctx.frameListeners.Deliver(event)
		p.listeners.Deliver(event)
		if p.appListeners != nil {
			p.appListeners.Deliver(event)
		}
	}
	if len(p.broadcastQueue) > 0 && p.wake != nil {
		p.wake()
	}
}

// takePending removes and returns the queued widget-local events for an
// identity, preserving order.
func (p *Pipeline) takePending(id WidgetID) []Event {
	events, ok := p.pending[id]
	if !ok {
		return nil
	}
	delete(p.pending, id)
	return events
}

// dropStalePending discards widget-local events whose target identity was
// not built this frame. The requester is gone, so there is no one to report
// to; a diagnostic is the most this produces.
func (p *Pipeline) dropStalePending() {
	for id := range p.pending {
		if _, seen := p.store.seen[id]; seen {
			continue
		}
		delete(p.pending, id)
		errors.Report(&errors.FrameError{
			Op:   "core.Pipeline.dropStalePending",
			Kind: errors.KindAsync,
			Err:  &errors.StaleResultError{ID: id.String()},
		})
	}
}

// spawn runs work on the task runner and queues its result for a future
// frame.
func (p *Pipeline) spawn(target WidgetID, targeted bool, work func() Event) {
	p.runner(func() {
		event := work()
		p.asyncMu.Lock()
		p.asyncResults = append(p.asyncResults, asyncResult{
			target:   target,
			targeted: targeted,
			event:    event,
		})
		p.asyncMu.Unlock()
		if p.wake != nil {
			p.wake()
		}
	})
}

// collectAsyncResults moves completed async work into the frame's event
// queues. Results targeting an identity that was not resolved on the last
// frame are stale and dropped; caller-owned identities count as alive even
// though they never hold store entries.
func (p *Pipeline) collectAsyncResults() {
	p.asyncMu.Lock()
	results := p.asyncResults
	p.asyncResults = nil
	p.asyncMu.Unlock()

	for _, result := range results {
		if !result.targeted {
			p.broadcastQueue = append(p.broadcastQueue, result.event)
			continue
		}
		if !p.store.Alive(result.target) {
			errors.Report(&errors.FrameError{
				Op:   "core.Pipeline.collectAsyncResults",
				Kind: errors.KindAsync,
				Err:  &errors.StaleResultError{ID: result.target.String()},
			})
			continue
		}
		p.pending[result.target] = append(p.pending[result.target], result.event)
	}
}
