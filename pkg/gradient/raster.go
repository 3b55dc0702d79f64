package gradient

import (
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// DefaultSamples is the width of the strip produced by Render.
const DefaultSamples = 100

// Row samples stops at n evenly spaced positions f = k/(n-1).
//
// Each adjacent pair (a, b) contributes a*(1-t) + b*t with
// t = (f-a.Progress)/(b.Progress-a.Progress) while a.Progress <= f < b.Progress.
// The final pair also covers f == 1. A pair with equal progress covers
// nothing, which yields a hard edge. At f == 0 and f == 1 a zero-width
// pair gives way to its neighbour, so those samples take the inner colour.
func Row(stops Stops, n int) ([]color.Unit, error) {
	if err := stops.Validate(); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, errors.New(errors.ErrCodeRasterization, "gradient row needs at least 2 samples, got %d", n)
	}

	row := make([]color.Unit, n)
	for k := range row {
		row[k] = sample(stops, float64(k)/float64(n-1))
	}
	return row, nil
}

func sample(stops Stops, f float64) color.Unit {
	var out color.Unit
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		span := b.Progress - a.Progress
		if span <= 0 || f < a.Progress {
			continue
		}
		if f >= b.Progress && b.Progress < 1 {
			continue
		}
		t := (f - a.Progress) / span
		out = out.Add(a.Color.Mul(1 - t)).Add(b.Color.Mul(t))
	}
	return out
}

// Render validates stops, rasterizes them into a DefaultSamples-wide strip
// and adds it to s stretched over corners and clipped to the same polygon.
func Render(s surface.Surface, corners surface.Quad, stops Stops) error {
	row, err := Row(stops, DefaultSamples)
	if err != nil {
		return err
	}
	s.AddGradientImage(row, corners, corners.Points())
	return nil
}
