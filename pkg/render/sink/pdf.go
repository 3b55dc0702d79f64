package sink

import (
	"context"

	"github.com/matzehuels/bookrack/pkg/render"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// RenderPDF renders the display list as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, rec *surface.Recorder, opts ...Option) ([]byte, error) {
	svg, err := RenderSVG(rec, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
