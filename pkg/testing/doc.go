// Package testing provides a frame tester for exercising builds without a
// real renderer, a serializing canvas for asserting on recorded draw
// operations, a software rasterizer for snapshot comparison, and a fake
// clock for deterministic time.
//
// The typical test pumps a root builder through a [FrameTester]:
//
//	ft := NewFrameTester(t)
//	ft.Pump(func(ctx *core.BuildContext) {
//		widgets.Box().Size(100, 40).Background(graphics.ColorRed).Build(ctx)
//	})
//	ops := ft.Ops()
//
// Pump runs the same build, layout, paint, and delivery phases as a real
// window, against an in-memory surface.
package testing
