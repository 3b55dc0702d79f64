// Package surface defines the drawing boundary between the scene model and
// the output sinks.
//
// Items never draw pixels themselves. They emit two kinds of shapes onto a
// [Surface]: filled polygons, and gradient strips stretched over a
// quadrilateral and clipped to a polygon. A [Recorder] captures those calls
// as an ordered display list that the SVG, PNG, PDF and JSON sinks replay.
//
// Coordinates are scene units with the y axis pointing up; the origin of a
// rack is its bottom-left corner. Sinks flip to device space.
package surface

import (
	"math"

	"github.com/matzehuels/bookrack/pkg/color"
)

// Point is a 2-D coordinate in scene units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the length of p seen as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Quad is a quadrilateral. For rectangles the corners are ordered
// bottom-left, bottom-right, top-right, top-left.
type Quad [4]Point

// Rect returns the axis-aligned rectangle with its bottom-left at origin.
func Rect(origin Point, w, h float64) Quad {
	return Quad{
		origin,
		{X: origin.X + w, Y: origin.Y},
		{X: origin.X + w, Y: origin.Y + h},
		{X: origin.X, Y: origin.Y + h},
	}
}

// Points returns the corners as a polygon.
func (q Quad) Points() []Point {
	return []Point{q[0], q[1], q[2], q[3]}
}

// Surface receives shapes in painter's order. Implementations are
// append-only sinks; nothing is ever read back.
type Surface interface {
	// AddPolygon adds a closed polygon. A nil fill adds an outline-only
	// shape, which sinks may skip.
	AddPolygon(points []Point, fill *color.Color)
	// AddGradientImage adds a horizontal strip of samples stretched over
	// corners and clipped to clip.
	AddGradientImage(row []color.Unit, corners Quad, clip []Point)
}
