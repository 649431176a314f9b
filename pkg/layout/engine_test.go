package layout

import (
	"testing"

	"github.com/go-prism/prism/pkg/graphics"
)

func buildRow(spacing float64, widths ...float64) *Tree {
	tree := &Tree{}
	tree.Begin(KindRow, Style{Spacing: spacing})
	for _, w := range widths {
		tree.Leaf(Style{Width: Fixed(w), Height: Fixed(20)}, nil)
	}
	tree.End()
	return tree
}

func TestRowOverflow_ContentFits(t *testing.T) {
	tree := buildRow(10, 100, 150)
	Compute(tree, graphics.Size{Width: 300, Height: 100})

	root := tree.Root()
	if root.OverflowX {
		t.Fatalf("expected no horizontal overflow: content 260 in width 300, got overflowX=true")
	}
	if got := root.ContentSize().Width; got != 260 {
		t.Fatalf("expected content width 260 (100+150+spacing 10), got %g", got)
	}
}

func TestRowOverflow_ContentExceedsViewport(t *testing.T) {
	tree := buildRow(10, 100, 150)
	Compute(tree, graphics.Size{Width: 200, Height: 100})

	root := tree.Root()
	if !root.OverflowX {
		t.Fatalf("expected horizontal overflow: content 260 in width 200")
	}
	if root.OverflowY {
		t.Fatalf("did not expect vertical overflow, content height 20 in height 100")
	}
}

func TestRowPlacement_FixedChildrenWithSpacing(t *testing.T) {
	tree := buildRow(10, 100, 150)
	Compute(tree, graphics.Size{Width: 300, Height: 100})

	children := tree.Root().Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if got := children[0].Rect(); got.Left != 0 || got.Right != 100 {
		t.Errorf("first child: expected [0,100], got [%g,%g]", got.Left, got.Right)
	}
	if got := children[1].Rect(); got.Left != 110 || got.Right != 260 {
		t.Errorf("second child: expected [110,260], got [%g,%g]", got.Left, got.Right)
	}
}

func TestColumnFill_SharesRemainingByWeight(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindColumn, Style{})
	tree.Leaf(Style{Width: Fill(1), Height: Fixed(100)}, nil)
	tree.Leaf(Style{Width: Fill(1), Height: Fill(1)}, nil)
	tree.Leaf(Style{Width: Fill(1), Height: Fill(3)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 400, Height: 500})

	children := tree.Root().Children()
	if got := children[0].Size().Height; got != 100 {
		t.Errorf("fixed child: expected height 100, got %g", got)
	}
	if got := children[1].Size().Height; got != 100 {
		t.Errorf("fill(1) child: expected height 100 (quarter of remaining 400), got %g", got)
	}
	if got := children[2].Size().Height; got != 300 {
		t.Errorf("fill(3) child: expected height 300, got %g", got)
	}
}

func TestColumnFill_NoRemainingSpaceCollapsesToZero(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindColumn, Style{})
	tree.Leaf(Style{Height: Fixed(500)}, nil)
	tree.Leaf(Style{Height: Fill(1)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 400, Height: 400})

	children := tree.Root().Children()
	if got := children[1].Size().Height; got != 0 {
		t.Fatalf("expected fill child to collapse to zero height, got %g", got)
	}
}

func TestMeasure_NegativeSpaceCollapsesToZero(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindColumn, Style{Padding: graphics.InsetsAll(50)})
	tree.Leaf(Style{Width: Fill(1), Height: Fill(1)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 40, Height: 40})

	child := tree.Root().Children()[0]
	if got := child.Size(); got.Width != 0 || got.Height != 0 {
		t.Fatalf("expected child collapsed to zero in over-padded parent, got %gx%g", got.Width, got.Height)
	}
}

func TestPadding_InsetsChildPlacement(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindColumn, Style{Padding: graphics.InsetsAll(10)})
	tree.Leaf(Style{Width: Fixed(50), Height: Fixed(30)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 200, Height: 200})

	child := tree.Root().Children()[0]
	if got := child.Rect(); got.Left != 10 || got.Top != 10 {
		t.Fatalf("expected child placed at (10,10) inside padding, got (%g,%g)", got.Left, got.Top)
	}
}

func TestMargin_ReservesSpaceBetweenSiblings(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindColumn, Style{})
	tree.Leaf(Style{Height: Fixed(20), Margin: graphics.EdgeInsets{Bottom: 5}}, nil)
	tree.Leaf(Style{Height: Fixed(20)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 100, Height: 100})

	second := tree.Root().Children()[1]
	if got := second.Rect().Top; got != 25 {
		t.Fatalf("expected second child at y=25 (20 + margin 5), got %g", got)
	}
}

func TestMainAxisAlignment_Center(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindRow, Style{MainAxis: MainAxisAlignmentCenter})
	tree.Leaf(Style{Width: Fixed(100), Height: Fixed(20)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 300, Height: 100})

	child := tree.Root().Children()[0]
	if got := child.Rect().Left; got != 100 {
		t.Fatalf("expected centered child at x=100, got %g", got)
	}
}

func TestCrossAxisAlignment_Stretch(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindRow, Style{CrossAxis: CrossAxisAlignmentStretch})
	tree.Leaf(Style{Width: Fixed(40)}, nil)
	tree.End()
	Compute(tree, graphics.Size{Width: 100, Height: 80})

	child := tree.Root().Children()[0]
	if got := child.Rect().Height(); got != 80 {
		t.Fatalf("expected stretched child height 80, got %g", got)
	}
}

func TestOffsetNode_TranslatesChild(t *testing.T) {
	tree := &Tree{}
	tree.Begin(KindStack, Style{})
	tree.BeginOffset(graphics.Offset{X: 15, Y: 25})
	tree.Leaf(Style{Width: Fixed(10), Height: Fixed(10)}, nil)
	tree.End()
	tree.End()
	Compute(tree, graphics.Size{Width: 100, Height: 100})

	offset := tree.Root().Children()[0]
	child := offset.Children()[0]
	if got := child.Rect(); got.Left != 15 || got.Top != 25 {
		t.Fatalf("expected child translated to (15,25), got (%g,%g)", got.Left, got.Top)
	}
}

func TestTree_MultipleRootsGetImplicitStack(t *testing.T) {
	tree := &Tree{}
	tree.Leaf(Style{Width: Fixed(10), Height: Fixed(10)}, nil)
	tree.Leaf(Style{Width: Fixed(20), Height: Fixed(20)}, nil)
	Compute(tree, graphics.Size{Width: 100, Height: 100})

	root := tree.Root()
	if root.Kind != KindStack {
		t.Fatalf("expected implicit stack root, got %v", root.Kind)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 children under implicit root, got %d", len(root.Children()))
	}
}

func TestTree_ResetReusesNodes(t *testing.T) {
	tree := &Tree{}
	first := tree.Begin(KindColumn, Style{})
	tree.End()

	tree.Reset()
	second := tree.Begin(KindRow, Style{})
	tree.End()

	if first != second {
		t.Fatalf("expected node reuse across resets")
	}
	if second.Kind != KindRow {
		t.Fatalf("expected recycled node to carry new kind, got %v", second.Kind)
	}
}
