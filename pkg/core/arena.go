package core

// Arena is the per-frame scratch allocator. Memory is carved from slabs and
// released in bulk by Reset at the start of the next frame; there is no
// per-object deallocation. Buffers handed out are only valid until Reset.
type Arena struct {
	slabs   [][]byte
	current int
	offset  int
}

const arenaSlabSize = 64 * 1024

// Reset recycles every slab, invalidating all previously returned buffers.
func (a *Arena) Reset() {
	a.current = 0
	a.offset = 0
}

// Bytes returns a zeroed scratch buffer of length n valid for this frame.
// Requests larger than a slab get a dedicated slab.
func (a *Arena) Bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	slabSize := arenaSlabSize
	if n > slabSize {
		slabSize = n
	}
	for {
		if a.current < len(a.slabs) {
			slab := a.slabs[a.current]
			if a.offset+n <= len(slab) {
				buf := slab[a.offset : a.offset+n]
				a.offset += n
				clear(buf)
				return buf
			}
			a.current++
			a.offset = 0
			continue
		}
		a.slabs = append(a.slabs, make([]byte, slabSize))
	}
}

// Allocated reports the total capacity held by the arena, for diagnostics.
func (a *Arena) Allocated() int {
	total := 0
	for _, slab := range a.slabs {
		total += len(slab)
	}
	return total
}
