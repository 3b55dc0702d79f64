package surface

// Affine is a 2-D affine transform in SVG matrix order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Affine{A: 1, D: 1}

// Apply transforms p.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Then returns the transform that applies m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		A: n.A*m.A + n.C*m.B,
		B: n.B*m.A + n.D*m.B,
		C: n.A*m.C + n.C*m.D,
		D: n.B*m.C + n.D*m.D,
		E: n.A*m.E + n.C*m.F + n.E,
		F: n.B*m.E + n.D*m.F + n.F,
	}
}

// ImageTransform maps the unit square of a gradient strip onto corners.
// The strip's horizontal axis follows the edge corners[0]->corners[1];
// its vertical axis spans corners[2].Y - corners[0].Y.
func ImageTransform(corners Quad) Affine {
	u := corners[1].Sub(corners[0])
	return Affine{
		A: u.X, B: u.Y,
		C: 0, D: corners[2].Y - corners[0].Y,
		E: corners[0].X, F: corners[0].Y,
	}
}
