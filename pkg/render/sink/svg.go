package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// RenderSVG writes the display list as a standalone SVG document.
func RenderSVG(rec *surface.Recorder, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	f := NewFrame(rec, c.scale, c.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width(), f.Height(), f.Width(), f.Height())

	if c.title != "" {
		buf.WriteString("  <title>")
		_ = xml.EscapeText(&buf, []byte(c.title))
		buf.WriteString("</title>\n")
	}
	if c.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" %s/>`+"\n", fillAttrs(*c.background))
	}

	clips := 0
	for i, s := range rec.Shapes() {
		switch s.Kind {
		case surface.KindPolygon:
			if s.Fill == nil {
				continue
			}
			fmt.Fprintf(&buf, `  <polygon points="%s" %s/>`+"\n", pointList(f.Project(s.Points)), fillAttrs(*s.Fill))
		case surface.KindGradient:
			uri, err := stripDataURI(s.Row)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRasterization, err, "shape %d", i)
			}
			clips++
			id := fmt.Sprintf("clip-%d", clips)
			m := surface.ImageTransform(s.Corners).Then(f.Device())
			fmt.Fprintf(&buf, `  <clipPath id="%s"><polygon points="%s"/></clipPath>`+"\n", id, pointList(f.Project(s.Points)))
			fmt.Fprintf(&buf, `  <g clip-path="url(#%s)"><image x="0" y="0" width="1" height="1" preserveAspectRatio="none" image-rendering="optimizeQuality" transform="%s" xlink:href="%s"/></g>`+"\n",
				id, matrix(m), uri)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func fillAttrs(c color.Color) string {
	attrs := fmt.Sprintf(`fill="%s"`, c.WithoutAlpha().Hex())
	if _, ok := c.Alpha(); ok {
		attrs += fmt.Sprintf(` fill-opacity="%.3f"`, c.Opacity())
	}
	return attrs
}

func pointList(points []surface.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func matrix(m surface.Affine) string {
	return fmt.Sprintf("matrix(%.4f %.4f %.4f %.4f %.4f %.4f)", m.A, m.B, m.C, m.D, m.E, m.F)
}

// stripImage turns a gradient row into an N x 1 image.
func stripImage(row []color.Unit) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(row), 1))
	for x, u := range row {
		img.SetNRGBA(x, 0, u.NRGBA())
	}
	return img
}

func stripDataURI(row []color.Unit) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, stripImage(row)); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
