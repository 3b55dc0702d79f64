package surface

import (
	"math"

	"github.com/matzehuels/bookrack/pkg/color"
)

// Kind identifies the type of a recorded shape.
type Kind string

const (
	KindPolygon  Kind = "polygon"
	KindGradient Kind = "gradient"
)

// Shape is one entry of a display list.
type Shape struct {
	Kind Kind

	// Points is the polygon outline for KindPolygon and the clip path for
	// KindGradient.
	Points []Point
	// Fill is set for filled polygons.
	Fill *color.Color

	// Row and Corners describe a KindGradient strip.
	Row     []color.Unit
	Corners Quad
}

// Recorder is a Surface that keeps every shape in emission order.
// It is not safe for concurrent use.
type Recorder struct {
	shapes []Shape
}

// NewRecorder returns an empty display list.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// AddPolygon implements Surface.
func (r *Recorder) AddPolygon(points []Point, fill *color.Color) {
	s := Shape{Kind: KindPolygon, Points: clonePoints(points)}
	if fill != nil {
		c := *fill
		s.Fill = &c
	}
	r.shapes = append(r.shapes, s)
}

// AddGradientImage implements Surface.
func (r *Recorder) AddGradientImage(row []color.Unit, corners Quad, clip []Point) {
	r.shapes = append(r.shapes, Shape{
		Kind:    KindGradient,
		Points:  clonePoints(clip),
		Row:     append([]color.Unit(nil), row...),
		Corners: corners,
	})
}

// Shapes returns the recorded display list. Callers must not modify it.
func (r *Recorder) Shapes() []Shape { return r.shapes }

// Len returns the number of recorded shapes.
func (r *Recorder) Len() int { return len(r.shapes) }

// Count returns the number of shapes of the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, s := range r.shapes {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box of all recorded geometry. ok is false
// for an empty display list.
func (r *Recorder) Bounds() (min, max Point, ok bool) {
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range r.shapes {
		pts := s.Points
		if s.Kind == KindGradient {
			pts = append(s.Corners.Points(), pts...)
		}
		for _, p := range pts {
			min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
			max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
			ok = true
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return min, max, true
}

func clonePoints(points []Point) []Point {
	return append([]Point(nil), points...)
}

// Ensure Recorder implements Surface.
var _ Surface = (*Recorder)(nil)
