package app

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/rendering"
	"github.com/go-prism/prism/pkg/widgets"
)

// fakeRenderer records submitted frames.
type fakeRenderer struct {
	size      graphics.Size
	submitted []*rendering.DisplayList
	presents  int
	submitErr error
}

func (r *fakeRenderer) SurfaceSize() graphics.Size { return r.size }

func (r *fakeRenderer) Submit(list *rendering.DisplayList) error {
	if r.submitErr != nil {
		return r.submitErr
	}
	r.submitted = append(r.submitted, list)
	return nil
}

func (r *fakeRenderer) Present() error {
	r.presents++
	return nil
}

func emptyRoot(ctx *core.BuildContext) {}

func TestWindow_RenderFrameSubmitsAndPresents(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 640, Height: 480}}
	w := a.NewWindow(WindowDescriptor{Title: "main"}, renderer, func(ctx *core.BuildContext) {
		widgets.Box().Size(10, 10).Background(graphics.ColorRed).Build(ctx)
	})

	if err := w.RenderFrame(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(renderer.submitted) != 1 || renderer.presents != 1 {
		t.Fatalf("expected one submit and one present, got %d/%d",
			len(renderer.submitted), renderer.presents)
	}
	if got := w.Pipeline().Viewport(); got.Width != 640 || got.Height != 480 {
		t.Fatalf("expected viewport polled from the renderer, got %gx%g", got.Width, got.Height)
	}
}

func TestWindow_SubmitErrorSurfaces(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{
		size:      graphics.Size{Width: 100, Height: 100},
		submitErr: goerrors.New("surface lost"),
	}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	err := w.RenderFrame()
	if err == nil {
		t.Fatal("expected submit failure to surface")
	}
	if renderer.presents != 0 {
		t.Fatal("expected no present after a failed submit")
	}
}

func TestWindow_FrameRequestClearedByRender(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	if !w.NeedsFrame() {
		t.Fatal("expected a fresh window to want its first frame")
	}
	if err := w.RenderFrame(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if w.NeedsFrame() {
		t.Fatal("expected the frame request cleared after rendering")
	}

	w.RequestFrame()
	if !w.NeedsFrame() {
		t.Fatal("expected an explicit request to mark the window dirty")
	}
}

func TestWindow_DispatchDeliversOnNextFrame(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	var got []core.Event
	w.OnEvent(func(event core.Event) bool {
		got = append(got, event)
		return true
	})

	w.Dispatch(PointerEvent{Kind: PointerDown, Position: graphics.Offset{X: 5, Y: 5}})
	if !w.NeedsFrame() {
		t.Fatal("expected dispatch to request a frame")
	}
	if err := w.RenderFrame(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected the pointer event delivered, got %v", got)
	}
	if pe, ok := got[0].(PointerEvent); !ok || pe.Kind != PointerDown {
		t.Fatalf("expected a PointerDown event, got %#v", got[0])
	}
}

func TestWindow_ScrollRoutesToVirtualList(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 400, Height: 640}}

	var info widgets.ScrollInfo
	w := a.NewWindow(WindowDescriptor{}, renderer, func(ctx *core.BuildContext) {
		info = widgets.VirtualList().
			ItemExtent(32).
			ItemsCount(10_000).
			Build(ctx, func(*core.BuildContext, uint64) {})
	})

	if err := w.RenderFrame(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !w.Scroll(info.ID, 0, 64) {
		t.Fatal("expected scroll routed to the list's persisted state")
	}
	if err := w.RenderFrame(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if info.Range.First != 1 {
		t.Fatalf("expected range shifted by two items (offset 64, prefetch 1), got first=%d", info.Range.First)
	}
}

func TestWindow_CursorDefaultsAndSticks(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	if w.Cursor() != CursorDefault {
		t.Fatalf("expected the default cursor, got %v", w.Cursor())
	}
	w.SetCursor(CursorPointer)
	if w.Cursor() != CursorPointer {
		t.Fatalf("expected the requested cursor, got %v", w.Cursor())
	}
}

func TestApp_StepRendersOnlyDirtyWindows(t *testing.T) {
	a := New(Options{})
	r1 := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	r2 := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w1 := a.NewWindow(WindowDescriptor{Title: "one"}, r1, emptyRoot)
	a.NewWindow(WindowDescriptor{Title: "two"}, r2, emptyRoot)

	if err := a.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if r1.presents != 1 || r2.presents != 1 {
		t.Fatalf("expected both fresh windows rendered, got %d/%d", r1.presents, r2.presents)
	}

	w1.RequestFrame()
	if err := a.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if r1.presents != 2 || r2.presents != 1 {
		t.Fatalf("expected only the dirty window re-rendered, got %d/%d", r1.presents, r2.presents)
	}
}

func TestApp_StepPrunesClosedWindows(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	w.Close()
	if err := a.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if len(a.Windows()) != 0 {
		t.Fatalf("expected closed window pruned, %d windows left", len(a.Windows()))
	}
}

func TestApp_RunExitsWhenAllWindowsClose(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	w := a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)
	w.Close()

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return once every window closed")
	}
}

func TestApp_RunHonorsContextCancellation(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !goerrors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after cancellation")
	}
}

func TestApp_BroadcastReachesAppListeners(t *testing.T) {
	a := New(Options{})
	renderer := &fakeRenderer{size: graphics.Size{Width: 100, Height: 100}}
	a.NewWindow(WindowDescriptor{}, renderer, emptyRoot)

	var order []string
	a.OnEvent(func(event core.Event) bool {
		order = append(order, "app")
		return true
	})
	a.Windows()[0].OnEvent(func(event core.Event) bool {
		order = append(order, "window")
		return true
	})

	a.Broadcast("quit-requested")
	if err := a.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(order) != 2 || order[0] != "window" || order[1] != "app" {
		t.Fatalf("expected window listeners before app listeners, got %v", order)
	}
}
