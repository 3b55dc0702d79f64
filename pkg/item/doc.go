// Package item composes books into racks and emits them onto a surface.
//
// # Overview
//
// A scene is a tree of [Item] values. Leaves are [Book] and [Spacer]; the
// only container is [Rack], which packs its children left to right:
//
//	b1, _ := item.NewBook(item.BookSpec{Height: 30, Width: 4, BaseColor: c})
//	b2, _ := item.NewBook(item.BookSpec{Height: 28, Width: 3.5, BaseColor: c})
//	rack, _ := item.NewRack(b1, b2)
//
//	rec := surface.NewRecorder()
//	err := rack.Emit(surface.Point{}, rec)
//
// # Books
//
// A book is a base rectangle with up to three optional parts, each given as
// a ratio of the book's size:
//
//   - Edge: two vertical stripes of width Width*EdgeRatio at the left and
//     right margins
//   - Obi: a band of height Height*ObiRatio across the top
//   - Shadow: a horizontal lighting profile. ShadowLevel darkens the outer
//     edges, ShadowRatio is where the lit band begins
//
// Each optional part needs both of its fields. [NewBook] checks that and
// all ratio ranges once, so a constructed Book never fails to emit for
// input reasons.
//
// Without a shadow every part is a flat polygon. With a shadow every part
// is a gradient: the base and obi use [gradient.FullStops], the edges use
// [gradient.PartialStops] so that the stripes continue the profile of the
// rectangle they are cut from.
//
// # Coordinates
//
// The scene is y-up. A book emitted at origin (x, y) occupies
// [x, x+Width] by [y, y+Height].
package item
