package core

// Event is any value routed through the event system. Widget-local events
// reach only the owning widget's mutator; broadcast events fan out to every
// registered listener.
type Event any

// EventHandler mutates widget state in response to a widget-local event and
// reports whether the event was handled.
type EventHandler func(event Event) bool

// BroadcastListener receives a broadcast event. The returned handled flag is
// informational only: broadcast is fan-out, so it never stops propagation to
// later listeners.
type BroadcastListener func(event Event) bool

// ListenerRegistry holds broadcast listeners in registration order. A window
// pipeline and the application each own one; component-scope listeners are
// re-registered during every build.
type ListenerRegistry struct {
	listeners []BroadcastListener
}

// Register appends a listener and returns its removal function.
func (r *ListenerRegistry) Register(listener BroadcastListener) func() {
	if listener == nil {
		return func() {}
	}
	r.listeners = append(r.listeners, listener)
	index := len(r.listeners) - 1
	return func() {
		if index < len(r.listeners) {
			r.listeners[index] = nil
		}
	}
}

// Deliver offers the event to every live listener in registration order.
// It returns the number of listeners that reported the event handled.
func (r *ListenerRegistry) Deliver(event Event) int {
	handled := 0
	for _, listener := range r.listeners {
		if listener == nil {
			continue
		}
		if listener(event) {
			handled++
		}
	}
	return handled
}

// Len returns the number of live listeners.
func (r *ListenerRegistry) Len() int {
	n := 0
	for _, listener := range r.listeners {
		if listener != nil {
			n++
		}
	}
	return n
}

// eventScope tracks the stateful widget currently building, so Emit knows
// which mutator owns the event.
type eventScope struct {
	target  WidgetID
	handler EventHandler
	// queue holds events emitted during this scope's build; they are applied
	// in emission order before the widget finishes for the frame.
	queue []Event
}

// Emit raises a widget-local event for the enclosing stateful widget. Events
// emitted during that widget's build are applied, in order, before the
// widget is done for the frame; nested emissions drain recursively. Outside
// any stateful scope the event has no owner and is dropped, which is not an
// error.
func (ctx *BuildContext) Emit(event Event) {
	if len(ctx.scopes) == 0 {
		return
	}
	scope := &ctx.scopes[len(ctx.scopes)-1]
	scope.queue = append(scope.queue, event)
}

// Broadcast queues an event for delivery to every component, window, and
// application scope listener once the build phase completes. Delivery is
// never interleaved with the build.
func (ctx *BuildContext) Broadcast(event Event) {
	ctx.pipeline.broadcastQueue = append(ctx.pipeline.broadcastQueue, event)
}

// OnBroadcast registers a component-scope broadcast listener for this frame.
// Component listeners are rebuilt every frame, mirroring the immediate-mode
// description itself, and run before window and application listeners.
func (ctx *BuildContext) OnBroadcast(listener BroadcastListener) {
	ctx.frameListeners.Register(listener)
}

// EventScope runs fn with the given identity's mutator installed as the
// Emit target. Pending events queued for the identity from earlier frames
// (including async results) are applied first; events emitted by fn itself
// are applied after fn returns, before the scope closes.
func (ctx *BuildContext) EventScope(id WidgetID, handler EventHandler, fn func()) {
	pending := ctx.pipeline.takePending(id)
	for _, event := range pending {
		handler(event)
	}

	ctx.scopes = append(ctx.scopes, eventScope{target: id, handler: handler})
	index := len(ctx.scopes) - 1
	defer func() {
		ctx.scopes = ctx.scopes[:index]
	}()

	fn()

	// Drain events emitted during the build, including ones emitted by the
	// handler itself while draining.
	for {
		scope := &ctx.scopes[index]
		if len(scope.queue) == 0 {
			return
		}
		event := scope.queue[0]
		scope.queue = scope.queue[1:]
		handler(event)
	}
}
