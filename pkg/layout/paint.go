package layout

import (
	"github.com/go-prism/prism/pkg/rendering"
)

// PaintTree walks the placed tree in declaration order and records each
// node's background, custom paint, and children onto the canvas. Declaration
// order is z-order for layered stacks.
func PaintTree(tree *Tree, canvas rendering.Canvas) {
	root := tree.Root()
	if root == nil {
		return
	}
	paintNode(root, canvas)
}

func paintNode(node *Node, canvas rendering.Canvas) {
	rect := node.rect
	if node.Style.Clip {
		canvas.Save()
		canvas.ClipRect(rect)
		defer canvas.Restore()
	}
	if !node.Style.Background.IsTransparent() {
		canvas.DrawRect(rect, rendering.FillPaint(node.Style.Background))
	}
	if node.PaintFn != nil {
		node.PaintFn(canvas, rect)
	}
	for _, child := range node.children {
		paintNode(child, canvas)
	}
}
