package widgets

import (
	"math"

	"github.com/go-prism/prism/pkg/core"
	"github.com/go-prism/prism/pkg/graphics"
	"github.com/go-prism/prism/pkg/layout"
)

// VirtualRange is the per-frame window of logical indices a virtual list
// materializes. It is recomputed from scroll state every frame and never
// persisted. The range is half-open: [First, Last).
type VirtualRange struct {
	First uint64
	Last  uint64
}

// Count returns the number of indices in the range.
func (r VirtualRange) Count() uint64 {
	return r.Last - r.First
}

// ScrollInfo describes a list after its frame's build. The identity targets
// the list's persisted [ScrollState] for out-of-build collaborators; the
// geometry fields snapshot that state as of the last layout pass, so
// scrollbar affordances built in the same frame read consistent values.
type ScrollInfo struct {
	ID    core.WidgetID
	Range VirtualRange

	// ContentExtent is the logical content size along the scroll axis.
	ContentExtent float64
	// Progress is the scroll position as a fraction of the scrollable
	// range along the scroll axis.
	Progress float64
	// OverflowX and OverflowY report whether content exceeded the viewport
	// in each axis at the last layout pass.
	OverflowX bool
	OverflowY bool
}

// VirtualListBuilder configures a lazily-windowed list. The logical item
// count may be anything a uint64 can hold; per-frame cost depends only on
// the viewport and the prefetch margin, never on the count. Item indices
// are folded into child identities, so items keep their state across scroll
// positions without the full logical range ever existing.
type VirtualListBuilder struct {
	id         core.WidgetID
	itemExtent float64
	itemsCount uint64
	axis       layout.Axis
	prefetch   uint64
	style      layout.Style
}

// VirtualList creates a list builder keyed by its call site. Scroll
// direction defaults to vertical, item extent to zero (an empty list), and
// the prefetch margin to one item on each side.
func VirtualList() *VirtualListBuilder {
	return &VirtualListBuilder{
		id:       core.CallerID(1),
		prefetch: 1,
		style: layout.Style{
			Width:  layout.Fill(1),
			Height: layout.Fill(1),
			Clip:   true,
		},
	}
}

// Key mixes an explicit key into the list's identity.
func (b *VirtualListBuilder) Key(key any) *VirtualListBuilder {
	b.id = b.id.WithKey(key)
	return b
}

// ItemExtent sets the fixed size of every item along the scroll axis.
func (b *VirtualListBuilder) ItemExtent(extent float64) *VirtualListBuilder {
	b.itemExtent = extent
	return b
}

// ItemsCount sets the logical number of items.
func (b *VirtualListBuilder) ItemsCount(count uint64) *VirtualListBuilder {
	b.itemsCount = count
	return b
}

// Horizontal switches the scroll axis to left-to-right.
func (b *VirtualListBuilder) Horizontal() *VirtualListBuilder {
	b.axis = layout.AxisHorizontal
	return b
}

// Prefetch sets how many off-screen items are materialized on each side of
// the visible window.
func (b *VirtualListBuilder) Prefetch(margin uint64) *VirtualListBuilder {
	b.prefetch = margin
	return b
}

// Width sets the horizontal sizing rule of the viewport node.
func (b *VirtualListBuilder) Width(spec layout.SizeSpec) *VirtualListBuilder {
	b.style.Width = spec
	return b
}

// Height sets the vertical sizing rule of the viewport node.
func (b *VirtualListBuilder) Height(spec layout.SizeSpec) *VirtualListBuilder {
	b.style.Height = spec
	return b
}

// Background fills the viewport before items paint.
func (b *VirtualListBuilder) Background(color graphics.Color) *VirtualListBuilder {
	b.style.Background = color
	return b
}

// Build computes the materialized range from the persisted scroll offset
// and the viewport extent measured last frame, then runs item once per
// index in the range. Items are positioned at their absolute offsets inside
// the clipped viewport. After this frame's layout pass the measured
// viewport and logical content extents are folded back into the scroll
// state, so the offset is clamped against current geometry by the next
// input event.
func (b *VirtualListBuilder) Build(ctx *core.BuildContext, item func(ctx *core.BuildContext, index uint64)) ScrollInfo {
	id := ctx.Resolve(b.id)
	state := core.StateFor(ctx, id, func() *ScrollState { return new(ScrollState) })

	viewport := b.viewportExtent(ctx, state)
	scroll := b.scrollOffset(state)
	window := b.visibleRange(scroll, viewport)

	tree := ctx.Layout()
	node := tree.Begin(layout.KindStack, b.style)
	for i := window.First; i < window.Last; i++ {
		main := float64(i)*b.itemExtent - scroll
		offset := graphics.Offset{Y: main}
		if b.axis == layout.AxisHorizontal {
			offset = graphics.Offset{X: main}
		}
		tree.BeginOffset(offset)
		ctx.Scope(i, func(ctx *core.BuildContext) {
			itemStyle := layout.Style{Width: layout.Fill(1), Height: layout.Fixed(b.itemExtent)}
			if b.axis == layout.AxisHorizontal {
				itemStyle = layout.Style{Width: layout.Fixed(b.itemExtent), Height: layout.Fill(1)}
			}
			tree.Begin(layout.KindStack, itemStyle)
			item(ctx, i)
			tree.End()
		})
		tree.End()
	}
	tree.End()

	content := b.contentExtent()
	horizontal := b.axis == layout.AxisHorizontal
	ctx.AfterLayout(func() {
		rect := node.Rect()
		state.Width = rect.Width()
		state.Height = rect.Height()
		if horizontal {
			state.ContentWidth = content
			state.ContentHeight = rect.Height()
		} else {
			state.ContentWidth = rect.Width()
			state.ContentHeight = content
		}
		state.OverflowX = state.ContentWidth > state.Width
		state.OverflowY = state.ContentHeight > state.Height
	})

	info := ScrollInfo{
		ID:            id,
		Range:         window,
		ContentExtent: content,
		Progress:      state.ProgressY(),
		OverflowX:     state.OverflowX,
		OverflowY:     state.OverflowY,
	}
	if horizontal {
		info.Progress = state.ProgressX()
	}
	return info
}

// viewportExtent returns the list's extent along the scroll axis,
// preferring last frame's measurement and falling back to the build
// viewport before any layout has run.
func (b *VirtualListBuilder) viewportExtent(ctx *core.BuildContext, state *ScrollState) float64 {
	if b.axis == layout.AxisHorizontal {
		if state.Width > 0 {
			return state.Width
		}
		return ctx.Viewport().Width
	}
	if state.Height > 0 {
		return state.Height
	}
	return ctx.Viewport().Height
}

func (b *VirtualListBuilder) scrollOffset(state *ScrollState) float64 {
	if b.axis == layout.AxisHorizontal {
		return state.OffsetX
	}
	return state.OffsetY
}

func (b *VirtualListBuilder) contentExtent() float64 {
	return b.itemExtent * float64(b.itemsCount)
}

// visibleRange computes the materialized window in O(1). Both ends come
// from the scroll offset: the first index covers the viewport's leading
// edge and the last covers its trailing edge, so a misaligned offset keeps
// the partially visible item at each end. The span never exceeds
// ceil(viewport/extent)+1 plus the prefetch margin on each side,
// independent of the logical count.
func (b *VirtualListBuilder) visibleRange(scroll, viewport float64) VirtualRange {
	if b.itemsCount == 0 || b.itemExtent <= 0 || viewport <= 0 {
		return VirtualRange{}
	}
	scroll = math.Max(0, scroll)
	firstVisible := uint64(scroll / b.itemExtent)
	if firstVisible >= b.itemsCount {
		firstVisible = b.itemsCount - 1
	}
	lastVisible := uint64(math.Ceil((scroll + viewport) / b.itemExtent))

	first := uint64(0)
	if firstVisible > b.prefetch {
		first = firstVisible - b.prefetch
	}
	last := lastVisible + b.prefetch
	if last > b.itemsCount || last < firstVisible {
		last = b.itemsCount
	}
	return VirtualRange{First: first, Last: last}
}
