package random

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bookrack/pkg/errors"
)

// ColorMap transforms a raw RGB triple on the 0..255 scale.
type ColorMap func(rgb [3]float64) [3]float64

// DechromicBlend is how far DechromicMap pulls each channel toward the mean.
const DechromicBlend = 0.7

// IdentityMap returns rgb unchanged.
func IdentityMap(rgb [3]float64) [3]float64 { return rgb }

// DechromicMap desaturates by moving every channel toward the channel mean.
func DechromicMap(rgb [3]float64) [3]float64 {
	mean := (rgb[0] + rgb[1] + rgb[2]) / 3
	var out [3]float64
	for i, x := range rgb {
		out[i] = x + (mean-x)*DechromicBlend
	}
	return out
}

// MutedMap scales chroma in HCL space by k while keeping hue and
// lightness. k = 1 is the identity up to gamut clamping.
func MutedMap(k float64) ColorMap {
	return func(rgb [3]float64) [3]float64 {
		c := colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
		h, chroma, l := c.Hcl()
		m := colorful.Hcl(h, chroma*k, l).Clamped()
		return [3]float64{m.R * 255, m.G * 255, m.B * 255}
	}
}

// DefaultMutedChroma is the chroma factor used by the "muted" map name.
const DefaultMutedChroma = 0.45

// ColorMapNames lists the names accepted by ColorMapByName.
var ColorMapNames = []string{"identity", "dechromic", "muted"}

// ColorMapByName resolves a configuration name to a ColorMap.
func ColorMapByName(name string) (ColorMap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "identity", "none":
		return IdentityMap, nil
	case "dechromic":
		return DechromicMap, nil
	case "muted":
		return MutedMap(DefaultMutedChroma), nil
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "unknown colour map %q (valid: %s)", name, strings.Join(ColorMapNames, ", "))
}
