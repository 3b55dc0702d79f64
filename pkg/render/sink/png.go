package sink

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// RenderPNG rasterizes the display list. Polygons are filled with
// anti-aliased coverage; gradient strips are stretched with Catmull-Rom
// (bicubic) interpolation and masked by their clip polygon.
func RenderPNG(rec *surface.Recorder, opts ...Option) ([]byte, error) {
	img := Rasterize(rec, opts...)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws the display list onto a new RGBA image.
func Rasterize(rec *surface.Recorder, opts ...Option) *image.RGBA {
	c := newConfig(opts)
	f := NewFrame(rec, c.scale, c.margin)
	w, h := f.PixelSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if c.background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c.background.NRGBA()), image.Point{}, draw.Src)
	}

	for _, s := range rec.Shapes() {
		switch s.Kind {
		case surface.KindPolygon:
			if s.Fill == nil {
				continue
			}
			z := polygon(w, h, f.Project(s.Points))
			z.DrawOp = draw.Over
			z.Draw(dst, dst.Bounds(), image.NewUniform(s.Fill.NRGBA()), image.Point{})
		case surface.KindGradient:
			drawStrip(dst, f, s)
		}
	}
	return dst
}

func polygon(w, h int, points []surface.Point) *vector.Rasterizer {
	z := vector.NewRasterizer(w, h)
	for i, p := range points {
		if i == 0 {
			z.MoveTo(float32(p.X), float32(p.Y))
			continue
		}
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	return z
}

func drawStrip(dst *image.RGBA, f Frame, s surface.Shape) {
	if len(s.Row) == 0 {
		return
	}
	b := dst.Bounds()

	mask := image.NewAlpha(b)
	clip := polygon(b.Dx(), b.Dy(), f.Project(s.Points))
	clip.DrawOp = draw.Src
	clip.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	src := stripImage(s.Row)
	// source pixels -> unit square -> scene -> device
	toUnit := surface.Affine{A: 1 / float64(len(s.Row)), D: 1}
	m := toUnit.Then(surface.ImageTransform(s.Corners)).Then(f.Device())
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}

	draw.CatmullRom.Transform(dst, s2d, src, src.Bounds(), draw.Over, &draw.Options{
		DstMask:  mask,
		DstMaskP: b.Min,
	})
}
