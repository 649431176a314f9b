package core

import (
	"fmt"
	"runtime"
)

// WidgetID uniquely identifies one logical widget instance within its
// parent scope. The site component hashes the builder's call site; the seed
// component mixes in the enclosing ID scope and any explicit key. IDs are
// comparable and stable across frames for an unchanged call site and key.
type WidgetID struct {
	site     uint64
	seed     uint64
	hasSeed  bool
	resolved bool
}

// fnv-1a, inlined to avoid per-ID allocations in the build hot path.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

func hashUint64(h, v uint64) uint64 {
	for shift := 0; shift < 64; shift += 8 {
		h ^= (v >> shift) & 0xFF
		h *= fnvPrime
	}
	return h
}

// CallerID derives a WidgetID from the call site skip frames above the
// caller. Widget constructors pass 1 so the identity lands on the
// application's invocation line.
func CallerID(skip int) WidgetID {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return WidgetID{site: fnvOffset}
	}
	h := hashString(fnvOffset, file)
	h = hashUint64(h, uint64(line))
	// Mix the program counter's function entry so identical file:line from
	// inlined generic instantiations stay distinct.
	if fn := runtime.FuncForPC(pc); fn != nil {
		h = hashUint64(h, uint64(fn.Entry()))
	}
	return WidgetID{site: h}
}

// AutoID derives a WidgetID from the immediate caller's call site.
func AutoID() WidgetID {
	return CallerID(1)
}

// WithKey returns a copy of the ID carrying an explicit key, such as a loop
// index or a user-supplied identifier. An existing key is kept; explicit
// keys bind at the widget, not at enclosing scopes.
func (id WidgetID) WithKey(key any) WidgetID {
	if id.hasSeed {
		return id
	}
	id.seed = hashKey(fnvOffset, key)
	id.hasSeed = true
	return id
}

// withScopeSeed folds an enclosing scope seed into the ID. Explicit keys and
// scope seeds combine so the same call site in different loop iterations
// resolves distinct identities. Resolution is idempotent: an ID that has
// already been resolved passes through unchanged.
func (id WidgetID) withScopeSeed(seed uint64, has bool) WidgetID {
	if id.resolved {
		return id
	}
	id.resolved = true
	if !has {
		return id
	}
	if id.hasSeed {
		id.seed = hashUint64(hashUint64(fnvOffset, seed), id.seed)
		return id
	}
	id.seed = seed
	id.hasSeed = true
	return id
}

// String returns a short diagnostic form of the identity.
func (id WidgetID) String() string {
	if id.hasSeed {
		return fmt.Sprintf("widget(%016x:%016x)", id.site, id.seed)
	}
	return fmt.Sprintf("widget(%016x)", id.site)
}

// hashKey folds an arbitrary comparable key into a seed. Common key types
// avoid the fmt fallback.
func hashKey(h uint64, key any) uint64 {
	switch k := key.(type) {
	case string:
		return hashString(h, k)
	case int:
		return hashUint64(h, uint64(int64(k)))
	case int64:
		return hashUint64(h, uint64(k))
	case uint64:
		return hashUint64(h, k)
	case uint:
		return hashUint64(h, uint64(k))
	case uint32:
		return hashUint64(h, uint64(k))
	case int32:
		return hashUint64(h, uint64(int64(k)))
	case fmt.Stringer:
		return hashString(h, k.String())
	default:
		return hashString(h, fmt.Sprintf("%T:%v", key, key))
	}
}

// combineSeeds nests a child scope seed under a parent scope seed.
func combineSeeds(parent uint64, hasParent bool, child uint64) uint64 {
	if !hasParent {
		return child
	}
	return hashUint64(hashUint64(fnvOffset, parent), child)
}
