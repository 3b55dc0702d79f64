package sink

import (
	"math"

	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// Frame maps scene coordinates to device pixels.
type Frame struct {
	Min, Max surface.Point // scene bounding box
	Scale    float64       // pixels per scene unit
	Margin   float64       // scene units
}

// NewFrame fits a frame around everything recorded in rec. An empty
// display list gives a frame of just the margins.
func NewFrame(rec *surface.Recorder, scale, margin float64) Frame {
	min, max, ok := rec.Bounds()
	if !ok {
		min, max = surface.Point{}, surface.Point{}
	}
	return Frame{Min: min, Max: max, Scale: scale, Margin: margin}
}

// Width is the device width in pixels.
func (f Frame) Width() float64 { return (f.Max.X - f.Min.X + 2*f.Margin) * f.Scale }

// Height is the device height in pixels.
func (f Frame) Height() float64 { return (f.Max.Y - f.Min.Y + 2*f.Margin) * f.Scale }

// PixelSize rounds the device size up to whole pixels, at least 1x1.
func (f Frame) PixelSize() (w, h int) {
	return max(1, int(math.Ceil(f.Width()-1e-9))), max(1, int(math.Ceil(f.Height()-1e-9)))
}

// Device returns the scene-to-device transform. Scene y points up,
// device y points down.
func (f Frame) Device() surface.Affine {
	return surface.Affine{
		A: f.Scale,
		D: -f.Scale,
		E: (f.Margin - f.Min.X) * f.Scale,
		F: (f.Max.Y + f.Margin) * f.Scale,
	}
}

// Project maps scene points to device points.
func (f Frame) Project(points []surface.Point) []surface.Point {
	m := f.Device()
	out := make([]surface.Point, len(points))
	for i, p := range points {
		out[i] = m.Apply(p)
	}
	return out
}
