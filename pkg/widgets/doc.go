// Package widgets provides the built-in widget builders.
//
// Builders are plain functions invoked during the build pass. Each one
// appends to the frame's layout tree through the [core.BuildContext] it
// receives; none of them retain anything between frames on their own.
// Persistence happens only through the identity-keyed state store, which
// the stateful host ([Stateful]) and the virtual list ([VirtualList]) use
// internally.
//
// Composite builders follow a fluent configuration style:
//
//	widgets.Column().
//		Spacing(8).
//		CrossAlign(layout.CrossAxisAlignmentCenter).
//		Build(ctx, func(ctx *core.BuildContext) {
//			widgets.Box().Height(layout.Fixed(40)).Background(graphics.ColorBlue).Build(ctx)
//			widgets.Box().Height(layout.Fill(1)).Build(ctx)
//		})
//
// The configuration structs are frame-scoped values; reusing one across
// frames is allowed but carries no identity. Identity is derived from the
// call site of the builder that needs it, adjusted by explicit keys and
// enclosing [core.BuildContext.Scope] blocks.
package widgets
