package testing

import (
	"sync"
	"testing"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
)

const (
	// DefaultTestWidth is the default logical width of the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the test surface.
	DefaultTestHeight = 600
)

// FrameTester drives a pipeline through full frames without a real
// renderer. Async work spawned during builds is captured instead of run,
// so tests control exactly when results complete via RunTasks.
type FrameTester struct {
	t        *testing.T
	pipeline *core.Pipeline
	size     graphics.Size
	last     *rendering.DisplayList

	mu    sync.Mutex
	tasks []func()
	woken bool
}

// NewFrameTester creates a tester with the default surface size and a
// transparent background.
func NewFrameTester(t *testing.T) *FrameTester {
	ft := &FrameTester{
		t:    t,
		size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
	ft.pipeline = core.NewPipeline(core.PipelineOptions{
		Runner: func(fn func()) {
			ft.mu.Lock()
			ft.tasks = append(ft.tasks, fn)
			ft.mu.Unlock()
		},
		Wake: func() {
			ft.mu.Lock()
			ft.woken = true
			ft.mu.Unlock()
		},
	})
	return ft
}

// Pipeline exposes the tester's pipeline for direct store and listener
// access.
func (ft *FrameTester) Pipeline() *core.Pipeline {
	return ft.pipeline
}

// SetSize changes the logical surface size for subsequent pumps.
func (ft *FrameTester) SetSize(size graphics.Size) {
	ft.size = size
}

// Pump runs one full frame and returns its display list. A pass abort
// fails the test.
func (ft *FrameTester) Pump(root func(*core.BuildContext)) *rendering.DisplayList {
	ft.t.Helper()
	list, err := ft.PumpErr(root)
	if err != nil {
		ft.t.Fatalf("frame aborted: %v", err)
	}
	return list
}

// PumpErr runs one full frame and returns the raw result for tests that
// exercise abort paths.
func (ft *FrameTester) PumpErr(root func(*core.BuildContext)) (*rendering.DisplayList, error) {
	ft.pipeline.SetViewport(ft.size)
	list, err := ft.pipeline.RunFrame(root)
	if err == nil {
		ft.last = list
	}
	return list, err
}

// RunTasks synchronously executes all async work captured since the last
// call and returns how many tasks ran. Their results are queued for the
// next pump, exactly as with a real scheduler.
func (ft *FrameTester) RunTasks() int {
	ft.mu.Lock()
	tasks := ft.tasks
	ft.tasks = nil
	ft.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Woken reports whether the pipeline asked for a new frame since the last
// call, and resets the flag.
func (ft *FrameTester) Woken() bool {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	woken := ft.woken
	ft.woken = false
	return woken
}

// Ops replays the last pumped display list onto a serializing canvas and
// returns the recorded operations.
func (ft *FrameTester) Ops() []DisplayOp {
	if ft.last == nil {
		return nil
	}
	canvas := NewSerializingCanvas(ft.last.Size())
	ft.last.Paint(canvas)
	return canvas.Ops()
}
