// Package core drives the immediate-mode build pipeline.
//
// Every frame the application re-describes its whole interface by calling
// builder functions against a [BuildContext]. The context resolves a stable
// [WidgetID] for each invocation, fetches that identity's persisted state
// from the pipeline's [StateStore], and appends layout nodes to the
// per-frame tree. After the build the pipeline measures and places the tree,
// records a display list, delivers queued broadcast events, and
// garbage-collects state for identities absent from the new description.
//
// # Identity
//
// A widget's identity is derived from the call site of its builder plus an
// optional explicit key (a loop index, a user id). Identity is what makes
// state survive across frames: the same call site with the same key maps to
// the same state on every frame. Two sibling invocations resolving the same
// identity in one frame abort the pass with an identity collision error
// rather than silently sharing state.
//
// # Context propagation
//
// [Provide] pushes a typed value for the duration of a subtree; [ValueOf]
// reads the nearest enclosing value. Absence is an ordinary (zero, false)
// result. Scopes are popped on every exit path, including panics.
//
// # Events
//
// [BuildContext.Emit] targets the enclosing stateful widget's mutator;
// events emitted during that widget's build are applied in emission order
// before the widget finishes for the frame. [BuildContext.Broadcast] queues
// an event that fans out to component, window, and application listeners
// after the build phase completes.
//
// # Threading
//
// A pipeline is single-threaded: exactly one build pass may be in flight,
// and a re-entrant RunFrame is rejected. Async work started with
// [BuildContext.Spawn] runs elsewhere and re-enters the pipeline as an
// ordinary event on a future frame.
package core
