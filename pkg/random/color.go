package random

import (
	"math"

	"github.com/matzehuels/bookrack/pkg/color"
)

// ColorGenerator samples colours from a generator of unit values.
type ColorGenerator struct {
	gen  Generator
	cmap ColorMap
}

// NewColorGenerator uses IdentityMap when cmap is nil.
func NewColorGenerator(gen Generator, cmap ColorMap) *ColorGenerator {
	if cmap == nil {
		cmap = IdentityMap
	}
	return &ColorGenerator{gen: gen, cmap: cmap}
}

// Generate returns n colours. Each draws three samples, scales them by
// 255, applies the colour map and truncates to bytes.
func (g *ColorGenerator) Generate(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// Next returns a single colour.
func (g *ColorGenerator) Next() color.Color {
	s := g.gen.Generate(3)
	mapped := g.cmap([3]float64{s[0] * 255, s[1] * 255, s[2] * 255})
	return color.RGB(toByte(mapped[0]), toByte(mapped[1]), toByte(mapped[2]))
}

func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
