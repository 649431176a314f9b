package layout

import (
	"math"

	"github.com/go-prism/prism/pkg/graphics"
)

// Compute runs both layout passes over the tree: bottom-up measurement under
// the viewport constraints, then top-down placement into final rectangles.
func Compute(tree *Tree, viewport graphics.Size) {
	root := tree.Root()
	if root == nil {
		return
	}
	Measure(root, Tight(viewport).Normalize())
	Place(root, graphics.RectFromOffsetSize(graphics.Offset{}, root.size))
}

// Measure computes the node's size under the given constraints and recurses
// into children. The measured size excludes the node's margin; parents
// account for margins when packing.
func Measure(node *Node, constraints BoxConstraints) graphics.Size {
	constraints = constraints.Normalize()
	inner := constraints.Deflate(node.Style.Padding)

	var content graphics.Size
	switch node.Kind {
	case KindRow:
		content = measureFlex(node, inner, AxisHorizontal)
	case KindColumn:
		content = measureFlex(node, inner, AxisVertical)
	case KindOffset:
		for _, child := range node.children {
			size := Measure(child, inner)
			content.Width = math.Max(content.Width, size.Width+child.Style.Margin.Horizontal())
			content.Height = math.Max(content.Height, size.Height+child.Style.Margin.Vertical())
		}
	default: // KindStack
		content = measureLayered(node, inner)
	}
	node.contentSize = graphics.Size{
		Width:  content.Width + node.Style.Padding.Horizontal(),
		Height: content.Height + node.Style.Padding.Vertical(),
	}

	node.size = graphics.Size{
		Width:  resolveAxis(node.Style.Width, node.contentSize.Width, constraints.MinWidth, constraints.MaxWidth),
		Height: resolveAxis(node.Style.Height, node.contentSize.Height, constraints.MinHeight, constraints.MaxHeight),
	}
	node.size = constraints.Constrain(node.size)
	return node.size
}

// resolveAxis turns one axis spec plus measured content into a concrete
// extent. Fill with an unbounded limit degrades to fitting content.
func resolveAxis(spec SizeSpec, content, minLimit, maxLimit float64) float64 {
	switch spec.Mode {
	case SizeFixed:
		return math.Max(0, spec.Value)
	case SizeFill:
		if maxLimit < Unbounded {
			return maxLimit
		}
		return math.Max(content, minLimit)
	default: // SizeFit
		return math.Max(content, minLimit)
	}
}

// measureLayered sizes overlay children: each child gets the full inner
// constraint loosely, and the content is the maximum child extent.
func measureLayered(node *Node, inner BoxConstraints) graphics.Size {
	var content graphics.Size
	loose := BoxConstraints{MaxWidth: inner.MaxWidth, MaxHeight: inner.MaxHeight}
	for _, child := range node.children {
		size := Measure(child, loose)
		content.Width = math.Max(content.Width, size.Width+child.Style.Margin.Horizontal())
		content.Height = math.Max(content.Height, size.Height+child.Style.Margin.Vertical())
	}
	return content
}

// measureFlex sizes row/column children in two rounds: fixed and fit
// children first, then fill children share the remaining main-axis space by
// weight. Fill children collapse to zero when nothing remains.
func measureFlex(node *Node, inner BoxConstraints, axis Axis) graphics.Size {
	mainMax, crossMax := axisLimits(inner, axis)

	spacing := node.Style.Spacing
	totalSpacing := 0.0
	if n := len(node.children); n > 1 {
		totalSpacing = spacing * float64(n-1)
	}

	usedMain := 0.0
	maxCross := 0.0
	totalWeight := 0.0

	childLoose := withMainLimit(withCrossLimit(BoxConstraints{}, axis, crossMax), axis, Unbounded)

	for _, child := range node.children {
		if mainSpec(child, axis).Mode == SizeFill {
			totalWeight += mainSpec(child, axis).Value
			continue
		}
		size := Measure(child, childLoose)
		usedMain += axisMain(size, axis) + mainMargin(child, axis)
		maxCross = math.Max(maxCross, axisCross(size, axis)+crossMargin(child, axis))
	}

	// Second round: distribute remaining main-axis space to fill children.
	if totalWeight > 0 {
		remaining := 0.0
		if mainMax < Unbounded {
			remaining = math.Max(0, mainMax-usedMain-totalSpacing)
		}
		for _, child := range node.children {
			spec := mainSpec(child, axis)
			if spec.Mode != SizeFill {
				continue
			}
			share := 0.0
			if remaining > 0 {
				share = remaining * spec.Value / totalWeight
			}
			share = math.Max(0, share-mainMargin(child, axis))
			tight := withMainTight(childLoose, axis, share)
			size := Measure(child, tight)
			usedMain += axisMain(size, axis) + mainMargin(child, axis)
			maxCross = math.Max(maxCross, axisCross(size, axis)+crossMargin(child, axis))
		}
	}

	if len(node.children) > 0 {
		usedMain += totalSpacing
	}

	if axis == AxisHorizontal {
		return graphics.Size{Width: usedMain, Height: maxCross}
	}
	return graphics.Size{Width: maxCross, Height: usedMain}
}

// Place assigns the node's final rectangle and positions children according
// to the node's layout rule. Overflow flags are set when the packed content
// exceeds the node's own extent.
func Place(node *Node, rect graphics.Rect) {
	node.rect = rect
	content := node.Style.Padding.Shrink(rect)

	const tolerance = 0.5
	node.OverflowX = node.contentSize.Width > rect.Width()+tolerance
	node.OverflowY = node.contentSize.Height > rect.Height()+tolerance

	switch node.Kind {
	case KindRow:
		placeFlex(node, content, AxisHorizontal)
	case KindColumn:
		placeFlex(node, content, AxisVertical)
	case KindOffset:
		for _, child := range node.children {
			slot := child.Style.Margin.Shrink(graphics.RectFromOffsetSize(
				graphics.Offset{X: content.Left + node.Offset.X, Y: content.Top + node.Offset.Y},
				graphics.Size{
					Width:  child.size.Width + child.Style.Margin.Horizontal(),
					Height: child.size.Height + child.Style.Margin.Vertical(),
				},
			))
			Place(child, slot)
		}
	default: // KindStack
		placeLayered(node, content)
	}
}

// placeLayered positions overlay children using the cross-axis alignment on
// both axes (start/center/end/stretch).
func placeLayered(node *Node, content graphics.Rect) {
	for _, child := range node.children {
		available := graphics.Size{
			Width:  math.Max(0, content.Width()-child.Style.Margin.Horizontal()),
			Height: math.Max(0, content.Height()-child.Style.Margin.Vertical()),
		}
		size := child.size
		if node.Style.CrossAxis == CrossAxisAlignmentStretch {
			size = available
		}
		x := content.Left + child.Style.Margin.Left + alignOffset(node.Style.CrossAxis, available.Width, size.Width)
		y := content.Top + child.Style.Margin.Top + alignOffset(node.Style.CrossAxis, available.Height, size.Height)
		Place(child, graphics.RectFromOffsetSize(graphics.Offset{X: x, Y: y}, size))
	}
}

// placeFlex positions row/column children along the main axis with spacing
// and main-axis alignment, and aligns each child on the cross axis.
func placeFlex(node *Node, content graphics.Rect, axis Axis) {
	if len(node.children) == 0 {
		return
	}

	mainExtent := axisMainRect(content, axis)
	crossExtent := axisCrossRect(content, axis)

	occupied := 0.0
	for _, child := range node.children {
		occupied += axisMain(child.size, axis) + mainMargin(child, axis)
	}
	baseSpacing := node.Style.Spacing
	occupied += baseSpacing * float64(len(node.children)-1)

	free := math.Max(0, mainExtent-occupied)
	cursor, gap := mainAxisStart(node.Style.MainAxis, free, baseSpacing, len(node.children))

	for _, child := range node.children {
		childMain := axisMain(child.size, axis)
		childCross := axisCross(child.size, axis)

		availableCross := math.Max(0, crossExtent-crossMargin(child, axis))
		if node.Style.CrossAxis == CrossAxisAlignmentStretch {
			childCross = availableCross
		}
		crossPos := alignOffset(node.Style.CrossAxis, availableCross, childCross)

		var slot graphics.Rect
		if axis == AxisHorizontal {
			slot = graphics.RectFromLTWH(
				content.Left+cursor+child.Style.Margin.Left,
				content.Top+crossPos+child.Style.Margin.Top,
				childMain, childCross,
			)
		} else {
			slot = graphics.RectFromLTWH(
				content.Left+crossPos+child.Style.Margin.Left,
				content.Top+cursor+child.Style.Margin.Top,
				childCross, childMain,
			)
		}
		Place(child, slot)
		cursor += childMain + mainMargin(child, axis) + gap
	}
}

// mainAxisStart returns the starting cursor and inter-child gap for the
// given alignment, free space, and child count.
func mainAxisStart(alignment MainAxisAlignment, free, spacing float64, count int) (start, gap float64) {
	switch alignment {
	case MainAxisAlignmentEnd:
		return free, spacing
	case MainAxisAlignmentCenter:
		return free / 2, spacing
	case MainAxisAlignmentSpaceBetween:
		if count > 1 {
			return 0, spacing + free/float64(count-1)
		}
		return 0, spacing
	case MainAxisAlignmentSpaceAround:
		extra := free / float64(count)
		return extra / 2, spacing + extra
	case MainAxisAlignmentSpaceEvenly:
		extra := free / float64(count+1)
		return extra, spacing + extra
	default:
		return 0, spacing
	}
}

// alignOffset returns the position of a child of the given size within the
// available cross-axis extent.
func alignOffset(alignment CrossAxisAlignment, available, size float64) float64 {
	switch alignment {
	case CrossAxisAlignmentEnd:
		return math.Max(0, available-size)
	case CrossAxisAlignmentCenter:
		return math.Max(0, (available-size)/2)
	default: // start and stretch
		return 0
	}
}

func axisMain(size graphics.Size, axis Axis) float64 {
	if axis == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func axisCross(size graphics.Size, axis Axis) float64 {
	if axis == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func axisMainRect(rect graphics.Rect, axis Axis) float64 {
	if axis == AxisHorizontal {
		return rect.Width()
	}
	return rect.Height()
}

func axisCrossRect(rect graphics.Rect, axis Axis) float64 {
	if axis == AxisHorizontal {
		return rect.Height()
	}
	return rect.Width()
}

func mainSpec(node *Node, axis Axis) SizeSpec {
	if axis == AxisHorizontal {
		return node.Style.Width
	}
	return node.Style.Height
}

func mainMargin(node *Node, axis Axis) float64 {
	if axis == AxisHorizontal {
		return node.Style.Margin.Horizontal()
	}
	return node.Style.Margin.Vertical()
}

func crossMargin(node *Node, axis Axis) float64 {
	if axis == AxisHorizontal {
		return node.Style.Margin.Vertical()
	}
	return node.Style.Margin.Horizontal()
}

func axisLimits(c BoxConstraints, axis Axis) (mainMax, crossMax float64) {
	if axis == AxisHorizontal {
		return c.MaxWidth, c.MaxHeight
	}
	return c.MaxHeight, c.MaxWidth
}

func withMainLimit(c BoxConstraints, axis Axis, limit float64) BoxConstraints {
	if axis == AxisHorizontal {
		c.MaxWidth = limit
	} else {
		c.MaxHeight = limit
	}
	return c
}

func withCrossLimit(c BoxConstraints, axis Axis, limit float64) BoxConstraints {
	if axis == AxisHorizontal {
		c.MaxHeight = limit
	} else {
		c.MaxWidth = limit
	}
	return c
}

func withMainTight(c BoxConstraints, axis Axis, extent float64) BoxConstraints {
	if axis == AxisHorizontal {
		c.MinWidth = extent
		c.MaxWidth = extent
	} else {
		c.MinHeight = extent
		c.MaxHeight = extent
	}
	return c
}
