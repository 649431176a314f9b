package core

import (
	goerrors "errors"
	"testing"

	"github.com/go-prism/prism/pkg/errors"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
)

// taskPipeline captures spawned work so tests decide when async results
// complete.
func taskPipeline() (*Pipeline, *[]func()) {
	tasks := &[]func(){}
	p := NewPipeline(PipelineOptions{
		Runner: func(fn func()) { *tasks = append(*tasks, fn) },
	})
	p.SetViewport(graphics.Size{Width: 800, Height: 600})
	return p, tasks
}

func runTasks(tasks *[]func()) {
	pending := *tasks
	*tasks = nil
	for _, fn := range pending {
		fn()
	}
}

func boxRoot(ctx *BuildContext) {
	ctx.Layout().Begin(layout.KindColumn, layout.Style{})
	ctx.Layout().Leaf(layout.Style{
		Width:      layout.Fixed(100),
		Height:     layout.Fixed(40),
		Background: graphics.ColorRed,
	}, nil)
	ctx.Layout().End()
}

func TestRunFrame_ProducesDisplayList(t *testing.T) {
	p := newTestPipeline()
	list, err := p.RunFrame(boxRoot)
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if list == nil || list.OpCount() == 0 {
		t.Fatal("expected a non-empty display list")
	}
}

func TestRunFrame_IdempotentWithoutInput(t *testing.T) {
	p := newTestPipeline()
	first, err := p.RunFrame(boxRoot)
	if err != nil {
		t.Fatalf("first frame failed: %v", err)
	}
	second, err := p.RunFrame(boxRoot)
	if err != nil {
		t.Fatalf("second frame failed: %v", err)
	}

	if first.OpCount() != second.OpCount() {
		t.Fatalf("expected identical frames without input: %d ops then %d ops",
			first.OpCount(), second.OpCount())
	}
	if got := p.Store().Len(); got != 0 {
		t.Fatalf("expected no persisted state from a stateless tree, got %d entries", got)
	}
}

func TestRunFrame_RejectsReentrantBuild(t *testing.T) {
	p := newTestPipeline()
	var nestedErr error
	mustPump(t, p, func(ctx *BuildContext) {
		_, nestedErr = p.RunFrame(func(*BuildContext) {})
	})

	var reentrant *errors.ReentrantBuildError
	if !goerrors.As(nestedErr, &reentrant) {
		t.Fatalf("expected ReentrantBuildError from nested RunFrame, got %v", nestedErr)
	}
}

func TestRunFrame_AbortKeepsPriorState(t *testing.T) {
	p := newTestPipeline()
	mustPump(t, p, func(ctx *BuildContext) {
		counter := StateOf[int](ctx, AutoID().WithKey("kept"))
		*counter = 5
	})

	_, err := p.RunFrame(func(ctx *BuildContext) {
		StateOf[int](ctx, AutoID().WithKey("kept"))
		for i := 0; i < 2; i++ {
			StateOf[int](ctx, AutoID())
		}
	})
	if err == nil {
		t.Fatal("expected collision abort")
	}

	var value int
	mustPump(t, p, func(ctx *BuildContext) {
		value = *StateOf[int](ctx, AutoID().WithKey("kept"))
	})
	if value != 5 {
		t.Fatalf("expected state to survive an aborted pass, got %d", value)
	}
}

func TestRunFrame_NonAbortPanicPropagates(t *testing.T) {
	p := newTestPipeline()
	defer func() {
		if recover() == nil {
			t.Fatal("expected application panic to propagate out of RunFrame")
		}
	}()
	_, _ = p.RunFrame(func(ctx *BuildContext) {
		panic("application bug")
	})
}

func TestAfterLayout_RunsWithComputedGeometry(t *testing.T) {
	p := newTestPipeline()
	var measured graphics.Size
	mustPump(t, p, func(ctx *BuildContext) {
		node := ctx.Layout().Begin(layout.KindColumn, layout.Style{
			Width:  layout.Fill(1),
			Height: layout.Fill(1),
		})
		ctx.Layout().End()
		ctx.AfterLayout(func() {
			measured = node.Size()
		})
	})

	if measured.Width != 800 || measured.Height != 600 {
		t.Fatalf("expected after-layout callback to see the placed size 800x600, got %gx%g",
			measured.Width, measured.Height)
	}
}

func TestSpawn_ResultTargetsEnclosingWidget(t *testing.T) {
	p, tasks := taskPipeline()
	var applied []Event

	build := func(spawn bool) func(*BuildContext) {
		return func(ctx *BuildContext) {
			id := ctx.Resolve(AutoID())
			StateOf[int](ctx, id)
			ctx.EventScope(id, func(event Event) bool {
				applied = append(applied, event)
				return true
			}, func() {
				if spawn {
					ctx.Spawn(func() Event { return "loaded" })
				}
			})
		}
	}

	mustPump(t, p, build(true))
	runTasks(tasks)
	mustPump(t, p, build(false))

	if len(applied) != 1 || applied[0] != "loaded" {
		t.Fatalf("expected async result applied to the spawning widget next frame, got %v", applied)
	}
}

func TestSpawn_StaleResultDropped(t *testing.T) {
	p, tasks := taskPipeline()

	mustPump(t, p, func(ctx *BuildContext) {
		id := ctx.Resolve(AutoID())
		StateOf[int](ctx, id)
		ctx.EventScope(id, func(Event) bool { return true }, func() {
			ctx.Spawn(func() Event { return "late" })
		})
	})

	// The widget is gone before its result lands.
	mustPump(t, p, func(ctx *BuildContext) {})
	runTasks(tasks)
	mustPump(t, p, func(ctx *BuildContext) {})

	if got := len(p.pending); got != 0 {
		t.Fatalf("expected stale result dropped, %d pending queues left", got)
	}
}

func TestSpawnBroadcast_ResultFansOut(t *testing.T) {
	p, tasks := taskPipeline()
	var received []Event
	p.Listeners().Register(func(event Event) bool {
		received = append(received, event)
		return true
	})

	mustPump(t, p, func(ctx *BuildContext) {
		ctx.SpawnBroadcast(func() Event { return "done" })
	})
	runTasks(tasks)
	mustPump(t, p, func(ctx *BuildContext) {})

	if len(received) != 1 || received[0] != "done" {
		t.Fatalf("expected broadcast result on the next frame, got %v", received)
	}
}

func TestBroadcast_FromListenerWakesHost(t *testing.T) {
	woken := false
	p := NewPipeline(PipelineOptions{
		Wake: func() { woken = true },
	})
	p.SetViewport(graphics.Size{Width: 100, Height: 100})

	mustPump(t, p, func(ctx *BuildContext) {
		ctx.OnBroadcast(func(event Event) bool {
			if event == "first" {
				ctx.Broadcast("second")
			}
			return true
		})
		ctx.Broadcast("first")
	})

	if !woken {
		t.Fatal("expected a listener-raised broadcast to request the frame that delivers it")
	}

	woken = false
	delivered := []Event{}
	mustPump(t, p, func(ctx *BuildContext) {
		ctx.OnBroadcast(func(event Event) bool {
			delivered = append(delivered, event)
			return true
		})
	})
	if len(delivered) != 1 || delivered[0] != "second" {
		t.Fatalf("expected the deferred event in frame two, got %v", delivered)
	}
	if woken {
		t.Fatal("expected no wake when delivery leaves the queue empty")
	}
}

func TestSpawn_WakesHost(t *testing.T) {
	woken := false
	p := NewPipeline(PipelineOptions{
		Runner: func(fn func()) { fn() },
		Wake:   func() { woken = true },
	})
	p.SetViewport(graphics.Size{Width: 100, Height: 100})

	mustPump(t, p, func(ctx *BuildContext) {
		ctx.SpawnBroadcast(func() Event { return "tick" })
	})

	if !woken {
		t.Fatal("expected a completed async task to request a new frame")
	}
}
