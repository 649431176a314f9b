package core

import (
	"reflect"

	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
)

// BuildContext is the single object threaded through the recursive build.
// It exposes everything a widget builder needs: state resolution, context
// propagation, event emission, ID scoping, frame-scoped scratch memory, and
// the layout tree under construction. One context exists per build pass; it
// must never escape the pass.
type BuildContext struct {
	pipeline *Pipeline
	tree     *layout.Tree
	viewport graphics.Size

	idSeed    uint64
	hasIDSeed bool

	provided *providedValue
	scopes   []eventScope

	frameListeners ListenerRegistry
}

// providedValue is one entry of the dynamic scope stack. Lookup walks from
// innermost to outermost, so nested provides shadow outer ones.
type providedValue struct {
	key    reflect.Type
	value  any
	parent *providedValue
}

// Layout returns the per-frame layout tree being built.
func (ctx *BuildContext) Layout() *layout.Tree {
	return ctx.tree
}

// Viewport returns the logical size of the surface being built for.
func (ctx *BuildContext) Viewport() graphics.Size {
	return ctx.viewport
}

// Scratch returns a zeroed frame-scoped buffer from the pipeline arena.
// The buffer is released in bulk when the next frame starts.
func (ctx *BuildContext) Scratch(n int) []byte {
	return ctx.pipeline.arena.Bytes(n)
}

// Scope runs fn with the key folded into identity resolution. Builders
// invoked inside fn get identities distinct per key even when they share a
// call site, which is how loop bodies keep per-iteration state.
func (ctx *BuildContext) Scope(key any, fn func(*BuildContext)) {
	prevSeed, prevHas := ctx.idSeed, ctx.hasIDSeed
	ctx.idSeed = combineSeeds(prevSeed, prevHas, hashKey(fnvOffset, key))
	ctx.hasIDSeed = true
	defer func() {
		ctx.idSeed, ctx.hasIDSeed = prevSeed, prevHas
	}()
	fn(ctx)
}

// Resolve folds the enclosing ID scope into a widget's own identity.
// Resolution is idempotent, so a builder that hands the same identity to
// several collaborators (state store, event scope, async results) can
// resolve once up front and pass the result everywhere.
func (ctx *BuildContext) Resolve(id WidgetID) WidgetID {
	return id.withScopeSeed(ctx.idSeed, ctx.hasIDSeed)
}

func (ctx *BuildContext) resolveID(id WidgetID) WidgetID {
	return ctx.Resolve(id)
}

// AfterLayout registers fn to run once this frame's layout pass has
// completed, before painting. Scrollable widgets use it to fold measured
// viewport and content extents back into their persisted state.
func (ctx *BuildContext) AfterLayout(fn func()) {
	ctx.pipeline.afterLayout = append(ctx.pipeline.afterLayout, fn)
}

// Provide pushes a typed value onto the dynamic scope stack for the
// duration of fn. Descendants read it with [ValueOf]; a nested Provide of
// the same type shadows this one. The scope is popped on every exit path,
// including a panicking fn, so a failed subtree never leaks context into
// its siblings.
func Provide[T any](ctx *BuildContext, value T, fn func(*BuildContext)) {
	node := &providedValue{
		key:    reflect.TypeOf((*T)(nil)).Elem(),
		value:  value,
		parent: ctx.provided,
	}
	ctx.provided = node
	defer func() {
		ctx.provided = node.parent
	}()
	fn(ctx)
}

// ValueOf returns the nearest enclosing provided value of type T. Absence
// is a normal outcome reported through ok, not an error.
func ValueOf[T any](ctx *BuildContext) (value T, ok bool) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	for node := ctx.provided; node != nil; node = node.parent {
		if node.key == key {
			return node.value.(T), true
		}
	}
	return value, false
}

// Spawn hands a unit of work to the pipeline's task runner. The build pass
// never blocks on it: the returned event is queued for the enclosing
// stateful widget's mutator on a future frame. If that identity is gone by
// then, the result is discarded as stale. Outside a stateful scope the
// result is delivered as a broadcast instead.
func (ctx *BuildContext) Spawn(work func() Event) {
	if len(ctx.scopes) > 0 {
		ctx.pipeline.spawn(ctx.scopes[len(ctx.scopes)-1].target, true, work)
		return
	}
	ctx.pipeline.spawn(WidgetID{}, false, work)
}

// SpawnBroadcast hands a unit of work to the task runner and delivers its
// result as a broadcast event on a future frame.
func (ctx *BuildContext) SpawnBroadcast(work func() Event) {
	ctx.pipeline.spawn(WidgetID{}, false, work)
}
