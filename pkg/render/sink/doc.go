// Package sink provides output format renderers for recorded scenes.
//
// # Overview
//
// A "sink" replays a [surface.Recorder] display list into a final output
// format:
//
//   - SVG: polygons plus gradient strips embedded as 1-pixel-high PNG
//     images, each clipped to its quad
//   - PNG: rasterized in-process with golang.org/x/image
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the display list and book specs for external tools
//
// All sinks share the same [Frame]: the display list's bounding box plus a
// margin, scaled from scene units to pixels and flipped so that scene y
// points up on the page.
//
//	rec := surface.NewRecorder()
//	_ = rack.Emit(surface.Point{}, rec)
//	svg, err := sink.RenderSVG(rec, sink.WithScale(10), sink.WithBackground(bg))
//
// # Options
//
//   - [WithScale]: pixels per scene unit (default 10)
//   - [WithMargin]: margin around the scene in scene units (default 2)
//   - [WithBackground]: page colour; transparent when unset
//   - [WithTitle]: SVG title element
//   - [WithBooks], [WithSeed]: metadata recorded by the JSON sink
package sink
