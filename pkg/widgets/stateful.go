package widgets

import (
	"github.com/go-prism/prism/pkg/core"
)

// EventReceiver is implemented by state types that mutate themselves in
// response to widget-local events. When a [Stateful] host has no explicit
// handler installed, events are routed here.
type EventReceiver interface {
	// OnEvent applies one event to the state. The return value reports
	// whether the event was recognized.
	OnEvent(event core.Event) bool
}

// StatefulBuilder hosts persisted state of type T for one call site. It is
// the bridge between the immediate-mode description and the identity-keyed
// state store: the same call site resolves to the same *T every frame, and
// events targeting the identity are applied to that value before and during
// the host's build.
type StatefulBuilder[T any] struct {
	id       core.WidgetID
	init     func() *T
	external *T
	handler  func(state *T, event core.Event) bool
}

// Stateful creates a host keyed by its call site. Two invocations on
// different source lines hold independent state; one invocation reached
// twice in a frame needs either a Key or an enclosing
// [core.BuildContext.Scope] to disambiguate, and aborts the pass otherwise.
func Stateful[T any]() *StatefulBuilder[T] {
	return &StatefulBuilder[T]{id: core.CallerID(1)}
}

// Key mixes an explicit key into the host's identity. Use it when the same
// call site must hold distinct state per logical item.
func (b *StatefulBuilder[T]) Key(key any) *StatefulBuilder[T] {
	b.id = b.id.WithKey(key)
	return b
}

// Init sets the constructor used the first frame the identity appears.
// Without it the zero value of T is used.
func (b *StatefulBuilder[T]) Init(fn func() *T) *StatefulBuilder[T] {
	b.init = fn
	return b
}

// External switches the host to caller-owned state. The framework still
// tracks the identity for event targeting and liveness, but persists
// nothing: the caller keeps the value alive and the store entry, if one
// exists from an earlier frame, is discarded.
func (b *StatefulBuilder[T]) External(state *T) *StatefulBuilder[T] {
	b.external = state
	return b
}

// Handle installs an explicit event mutator, overriding any [EventReceiver]
// implementation on T.
func (b *StatefulBuilder[T]) Handle(fn func(state *T, event core.Event) bool) *StatefulBuilder[T] {
	b.handler = fn
	return b
}

// Build resolves the state, applies events queued for the identity from
// earlier frames, and runs build with the context's Emit target pointed at
// this host. Events emitted during build are applied, in order, before
// Build returns. The resolved identity is returned so out-of-build
// collaborators (input routing, async work) can target it.
func (b *StatefulBuilder[T]) Build(ctx *core.BuildContext, build func(ctx *core.BuildContext, state *T)) core.WidgetID {
	var (
		id    core.WidgetID
		state *T
	)
	if b.external != nil {
		id = ctx.ObserveExternal(b.id)
		state = b.external
	} else {
		id = ctx.Resolve(b.id)
		init := b.init
		if init == nil {
			init = func() *T { return new(T) }
		}
		state = core.StateFor(ctx, id, init)
	}

	ctx.EventScope(id, func(event core.Event) bool {
		if b.handler != nil {
			return b.handler(state, event)
		}
		if receiver, ok := any(state).(EventReceiver); ok {
			return receiver.OnEvent(event)
		}
		return false
	}, func() {
		build(ctx, state)
	})
	return id
}
