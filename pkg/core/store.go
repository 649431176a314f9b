package core

import (
	"reflect"

	"github.com/go-prism/prism/pkg/errors"
)

// StateStore owns the persisted, type-erased state of every live widget
// identity in one pipeline. Entries are created lazily on first resolution
// and garbage-collected at end of frame once their identity goes unseen for
// one full pass. The store is exclusively owned by its pipeline and must
// only be touched from the build thread.
type StateStore struct {
	data map[WidgetID]any
	seen map[WidgetID]struct{}
	// live holds the identities resolved on the last completed frame.
	// Caller-owned identities appear here without ever having a data entry.
	live map[WidgetID]struct{}
}

func newStateStore() *StateStore {
	return &StateStore{
		data: make(map[WidgetID]any),
		seen: make(map[WidgetID]struct{}),
		live: make(map[WidgetID]struct{}),
	}
}

// beginFrame clears the per-frame bookkeeping.
func (s *StateStore) beginFrame() {
	clear(s.seen)
}

// touch registers the identity as seen this frame. A second touch of the
// same identity within one frame is an identity collision: the build pass
// aborts rather than letting two widgets alias the same storage.
func (s *StateStore) touch(id WidgetID, widget string) {
	if _, dup := s.seen[id]; dup {
		abortBuild(&errors.IdentityCollisionError{ID: id.String(), Widget: widget})
	}
	s.seen[id] = struct{}{}
}

// Contains reports whether the identity currently has persisted state.
func (s *StateStore) Contains(id WidgetID) bool {
	_, ok := s.data[id]
	return ok
}

// Alive reports whether the identity was resolved on the last completed
// frame or holds persisted state. Caller-owned identities never have a
// store entry, so async delivery checks liveness through here rather than
// through Contains.
func (s *StateStore) Alive(id WidgetID) bool {
	if _, ok := s.data[id]; ok {
		return true
	}
	_, ok := s.live[id]
	return ok
}

// Len returns the number of live state entries.
func (s *StateStore) Len() int {
	return len(s.data)
}

// sweep drops state for every identity not seen this frame and records the
// frame's seen set as the live set for the gap until the next build. There
// is no grace period: an identity absent from one frame is unreachable
// afterward.
func (s *StateStore) sweep() {
	for id := range s.data {
		if _, ok := s.seen[id]; !ok {
			delete(s.data, id)
		}
	}
	s.live, s.seen = s.seen, s.live
}

// StateOf resolves the persisted state for the identity, creating a zero
// value on first use. The pointer is stable for as long as the identity
// stays in the tree.
func StateOf[T any](ctx *BuildContext, id WidgetID) *T {
	return StateFor(ctx, id, func() *T { return new(T) })
}

// StateFor resolves the persisted state for the identity, calling init on
// first use. It also registers the identity as seen, enabling end-of-frame
// garbage collection and duplicate detection.
func StateFor[T any](ctx *BuildContext, id WidgetID, init func() *T) *T {
	id = ctx.resolveID(id)
	store := ctx.pipeline.store
	store.touch(id, typeName[T]())

	if existing, ok := store.data[id]; ok {
		if state, ok := existing.(*T); ok {
			return state
		}
		// Same identity, different state type: the call site changed what
		// it stores. Treat the old entry as gone rather than aliasing.
		delete(store.data, id)
	}
	state := init()
	store.data[id] = state
	return state
}

// StateIn reads an identity's persisted state directly from a pipeline's
// store without registering a build-time resolution. Input collaborators use
// this between frames, e.g. to apply a scroll delta to a list's persisted
// offset. The id must be a resolved identity previously surfaced by the
// owning widget.
func StateIn[T any](p *Pipeline, id WidgetID) (*T, bool) {
	entry, ok := p.store.data[id]
	if !ok {
		return nil, false
	}
	state, ok := entry.(*T)
	return state, ok
}

// ObserveExternal registers a caller-owned identity without persisting any
// framework state for it. Caller-owned mode wins: an existing store entry
// for the identity is discarded so the two modes never alias.
func (ctx *BuildContext) ObserveExternal(id WidgetID) WidgetID {
	id = ctx.resolveID(id)
	ctx.pipeline.store.touch(id, "")
	delete(ctx.pipeline.store.data, id)
	return id
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.String()
}
