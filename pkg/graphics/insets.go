package graphics

// EdgeInsets describes padding or margin on each side of a box.
type EdgeInsets struct {
	Top    float64
	Left   float64
	Right  float64
	Bottom float64
}

// InsetsAll creates EdgeInsets with the same value on all sides.
func InsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Top: value, Left: value, Right: value, Bottom: value}
}

// InsetsSymmetric creates EdgeInsets with shared horizontal and vertical values.
func InsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Top: vertical, Left: horizontal, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the sum of the left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// Shrink returns the rect reduced by the insets on each side.
func (e EdgeInsets) Shrink(r Rect) Rect {
	return Rect{
		Left:   r.Left + e.Left,
		Top:    r.Top + e.Top,
		Right:  r.Right - e.Right,
		Bottom: r.Bottom - e.Bottom,
	}
}
