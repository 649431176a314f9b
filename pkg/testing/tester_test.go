package testing

import (
	"strings"
	"testing"
	"time"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/widgets"
)

func TestFrameTester_OpsReplayLastFrame(t *testing.T) {
	ft := NewFrameTester(t)
	ft.Pump(func(ctx *core.BuildContext) {
		widgets.Box().Size(100, 40).Background(graphics.ColorRed).Build(ctx)
	})

	ops := ft.Ops()
	if len(ops) == 0 {
		t.Fatal("expected ops from the pumped frame")
	}
	if ops[0].Op != "clear" {
		t.Fatalf("expected the frame to open with a clear, got %q", ops[0].Op)
	}
	var sawRect bool
	for _, op := range ops {
		if op.Op == "drawRect" && op.Params["color"] == "#ffff0000" {
			sawRect = true
		}
	}
	if !sawRect {
		t.Fatalf("expected the red rect in the replayed ops, got %v", ops)
	}
}

func TestFrameTester_SetSizeChangesViewport(t *testing.T) {
	ft := NewFrameTester(t)
	ft.SetSize(graphics.Size{Width: 320, Height: 240})

	var seen graphics.Size
	ft.Pump(func(ctx *core.BuildContext) {
		seen = ctx.Viewport()
	})
	if seen.Width != 320 || seen.Height != 240 {
		t.Fatalf("expected a 320x240 viewport, got %gx%g", seen.Width, seen.Height)
	}
}

func TestFrameTester_CapturesSpawnedTasks(t *testing.T) {
	ft := NewFrameTester(t)

	id := core.AutoID()
	ran := false
	ft.Pump(func(ctx *core.BuildContext) {
		ctx.EventScope(id, func(core.Event) bool { return true }, func() {
			ctx.Spawn(func() core.Event {
				ran = true
				return "done"
			})
		})
	})

	if ran {
		t.Fatal("expected the task captured, not run inline")
	}
	if got := ft.RunTasks(); got != 1 {
		t.Fatalf("expected one captured task, got %d", got)
	}
	if !ran {
		t.Fatal("expected RunTasks to execute the task")
	}
	if !ft.Woken() {
		t.Fatal("expected the completed task to wake the host")
	}
}

func TestFrameTester_WokenResetsOnRead(t *testing.T) {
	ft := NewFrameTester(t)
	ft.Pipeline().EnqueueBroadcast("ping")

	if !ft.Woken() {
		t.Fatal("expected the external broadcast to wake")
	}
	if ft.Woken() {
		t.Fatal("expected the flag reset after reading")
	}
}

func TestSerializingCanvas_FormatsParams(t *testing.T) {
	canvas := NewSerializingCanvas(graphics.Size{Width: 100, Height: 100})
	canvas.ClipRect(graphics.RectFromLTWH(1, 2, 3, 4))

	ops := canvas.Ops()
	if len(ops) != 1 {
		t.Fatalf("expected one op, got %d", len(ops))
	}
	s := ops[0].String()
	if !strings.HasPrefix(s, "clipRect") || !strings.Contains(s, "[1 2 4 6]") {
		t.Fatalf("expected a formatted clipRect op, got %q", s)
	}
}

func TestFakeClock_AdvanceAndSet(t *testing.T) {
	clock := NewFakeClock()
	start := clock.Now()

	clock.Advance(90 * time.Second)
	if got := clock.Now().Sub(start); got != 90*time.Second {
		t.Fatalf("expected 90s elapsed, got %v", got)
	}

	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	clock.Set(at)
	if !clock.Now().Equal(at) {
		t.Fatalf("expected the clock pinned to %v, got %v", at, clock.Now())
	}
}
