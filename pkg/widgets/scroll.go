package widgets

import (
	"github.com/go-prism/prism/pkg/core"
)

// ScrollState is the persisted state of a scrollable region. The scroll
// offset is owned here and mutated by input collaborators between frames;
// the geometry fields are measurements folded back in after each layout
// pass and describe the previous frame until then.
type ScrollState struct {
	// OffsetX and OffsetY are the current scroll position in pixels from
	// the content origin. Always clamped to the scrollable range.
	OffsetX float64
	OffsetY float64

	// Width and Height are the measured viewport extents.
	Width  float64
	Height float64

	// ContentWidth and ContentHeight are the logical content extents,
	// which for a virtual list reflect the full logical item count rather
	// than the materialized window.
	ContentWidth  float64
	ContentHeight float64

	// OverflowX and OverflowY report whether the content exceeds the
	// viewport in each axis. Scrollbar affordances key off these.
	OverflowX bool
	OverflowY bool
}

// ScrollBy applies a delta to the offset, clamped to the scrollable range
// known from the last layout pass.
func (s *ScrollState) ScrollBy(dx, dy float64) {
	s.ScrollTo(s.OffsetX+dx, s.OffsetY+dy)
}

// ScrollTo sets an absolute offset, clamped to the scrollable range known
// from the last layout pass.
func (s *ScrollState) ScrollTo(x, y float64) {
	s.OffsetX = clampOffset(x, s.ContentWidth-s.Width)
	s.OffsetY = clampOffset(y, s.ContentHeight-s.Height)
}

// ProgressX returns the horizontal scroll position as a fraction of the
// scrollable range, 0 at the content origin and 1 at the end. Zero when
// nothing overflows.
func (s *ScrollState) ProgressX() float64 {
	return progress(s.OffsetX, s.ContentWidth-s.Width)
}

// ProgressY returns the vertical scroll position as a fraction of the
// scrollable range.
func (s *ScrollState) ProgressY() float64 {
	return progress(s.OffsetY, s.ContentHeight-s.Height)
}

func progress(offset, max float64) float64 {
	if max <= 0 {
		return 0
	}
	p := offset / max
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func clampOffset(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ScrollBy applies a scroll delta to the persisted state of the identity,
// typically between frames in response to an input event. It reports
// whether the identity currently holds scroll state.
func ScrollBy(p *core.Pipeline, id core.WidgetID, dx, dy float64) bool {
	state, ok := core.StateIn[ScrollState](p, id)
	if !ok {
		return false
	}
	state.ScrollBy(dx, dy)
	return true
}

// ScrollTo sets an absolute scroll offset on the persisted state of the
// identity. It reports whether the identity currently holds scroll state.
func ScrollTo(p *core.Pipeline, id core.WidgetID, x, y float64) bool {
	state, ok := core.StateIn[ScrollState](p, id)
	if !ok {
		return false
	}
	state.ScrollTo(x, y)
	return true
}
