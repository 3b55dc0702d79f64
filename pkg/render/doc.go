// Package render turns recorded scenes into output files.
//
// # Overview
//
// Rendering is split in two layers:
//
//   - [surface]: the drawing boundary. Items emit polygons and gradient
//     strips onto a Surface; a Recorder keeps them as a
//     display list.
//   - [sink]: format writers that replay a display list as SVG, PNG, PDF
//     or JSON.
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg). [ToPNG] does the same for PNG; the PNG sink itself does not need
// it.
//
//	svg, _ := sink.RenderSVG(rec)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Install librsvg with brew install librsvg (macOS) or
// apt install librsvg2-bin (Linux).
//
// [surface]: https://pkg.go.dev/github.com/matzehuels/bookrack/pkg/render/surface
// [sink]: https://pkg.go.dev/github.com/matzehuels/bookrack/pkg/render/sink
package render
