// Package layout implements the two-pass box-model layout engine.
//
// The build pass describes each frame as a tree of layout nodes (stacks,
// rows, columns, offsets). The engine then runs a bottom-up measure pass
// under box constraints followed by a top-down placement pass that assigns
// final rectangles. Overflow in either axis is reported on the node so
// scroll-affordance widgets can react.
//
// Nodes are frame-scoped: the tree is backed by a bulk-reset arena and no
// node survives past the frame that built it.
package layout

import "fmt"

// Axis represents a layout direction.
// AxisVertical is the zero value, making it the default scroll direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment controls how children are positioned along the main axis
// (horizontal for a row, vertical for a column).
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart places children at the start of the main axis.
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd places children at the end of the main axis.
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter centers children along the main axis.
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween distributes free space evenly between
	// children, with none before the first or after the last child.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceAround distributes free space evenly, with
	// half-sized spaces at the start and end.
	MainAxisAlignmentSpaceAround
	// MainAxisAlignmentSpaceEvenly distributes free space evenly, including
	// equal space before the first and after the last child.
	MainAxisAlignmentSpaceEvenly
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	case MainAxisAlignmentSpaceAround:
		return "space_around"
	case MainAxisAlignmentSpaceEvenly:
		return "space_evenly"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned along the cross
// axis (vertical for a row, horizontal for a column).
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch stretches children to fill the cross axis.
	CrossAxisAlignmentStretch
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}
