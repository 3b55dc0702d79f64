package surface

import (
	"math"
	"testing"

	"github.com/matzehuels/bookrack/pkg/color"
)

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRect(t *testing.T) {
	q := Rect(Point{X: 1, Y: 2}, 3, 4)
	want := Quad{{1, 2}, {4, 2}, {4, 6}, {1, 6}}
	if q != want {
		t.Errorf("Rect() = %v, want %v", q, want)
	}
}

func TestImageTransformMapsUnitSquare(t *testing.T) {
	q := Rect(Point{X: 10, Y: 5}, 4.8, 30)
	m := ImageTransform(q)

	tests := []struct {
		in, want Point
	}{
		{Point{0, 0}, q[0]},
		{Point{1, 0}, q[1]},
		{Point{1, 1}, q[2]},
		{Point{0, 1}, q[3]},
		{Point{0.5, 0.5}, Point{12.4, 20}},
	}
	for _, tt := range tests {
		if got := m.Apply(tt.in); !near(got, tt.want) {
			t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestImageTransformFollowsBaseEdge(t *testing.T) {
	q := Quad{{0, 0}, {3, 4}, {3, 14}, {0, 10}}
	m := ImageTransform(q)
	if got := m.Apply(Point{1, 0}); !near(got, Point{3, 4}) {
		t.Errorf("u axis maps to %v, want (3,4)", got)
	}
	if got := m.Apply(Point{0, 1}); !near(got, Point{0, 14}) {
		t.Errorf("v axis maps to %v, want (0,14)", got)
	}
}

func TestAffineThen(t *testing.T) {
	scale := Affine{A: 2, D: 3}
	move := Affine{A: 1, D: 1, E: 5, F: -1}
	m := scale.Then(move)
	if got := m.Apply(Point{1, 1}); !near(got, Point{7, 2}) {
		t.Errorf("Then().Apply = %v, want (7,2)", got)
	}
	if got := Identity.Then(m).Apply(Point{1, 1}); !near(got, Point{7, 2}) {
		t.Errorf("Identity.Then = %v", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	fill := color.RGB(1, 2, 3)
	pts := []Point{{0, 0}, {1, 0}, {1, 1}}
	r.AddPolygon(pts, &fill)
	r.AddGradientImage([]color.Unit{{R: 1, A: 1}, {G: 1, A: 1}}, Rect(Point{2, 0}, 1, 5), Rect(Point{2, 0}, 1, 5).Points())

	pts[0] = Point{-100, -100}
	fill = color.RGB(9, 9, 9)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r.Count(KindPolygon) != 1 || r.Count(KindGradient) != 1 {
		t.Errorf("Count() mismatch: %d polygons, %d gradients", r.Count(KindPolygon), r.Count(KindGradient))
	}
	if r.Shapes()[0].Points[0] != (Point{0, 0}) {
		t.Error("recorder must copy points")
	}
	if r.Shapes()[0].Fill.Hex() != "#010203" {
		t.Error("recorder must copy fill colour")
	}

	min, max, ok := r.Bounds()
	if !ok || min != (Point{0, 0}) || max != (Point{3, 5}) {
		t.Errorf("Bounds() = %v %v %v", min, max, ok)
	}
}

func TestRecorderEmptyBounds(t *testing.T) {
	if _, _, ok := NewRecorder().Bounds(); ok {
		t.Error("empty recorder should report no bounds")
	}
}
