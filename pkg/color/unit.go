package color

import stdcolor "image/color"

// Unit is an RGBA colour with float channels, nominally in [0, 1].
type Unit struct {
	R, G, B, A float64
}

// UnitRGB builds an opaque Unit from an RGB triple.
func UnitRGB(rgb [3]float64) Unit {
	return Unit{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
}

// Scale multiplies the colour channels by k. Alpha is unchanged.
func (u Unit) Scale(k float64) Unit {
	return Unit{R: u.R * k, G: u.G * k, B: u.B * k, A: u.A}
}

// Add returns the channelwise sum of u and v, alpha included.
func (u Unit) Add(v Unit) Unit {
	return Unit{R: u.R + v.R, G: u.G + v.G, B: u.B + v.B, A: u.A + v.A}
}

// Mul multiplies every channel, alpha included, by k.
func (u Unit) Mul(k float64) Unit {
	return Unit{R: u.R * k, G: u.G * k, B: u.B * k, A: u.A * k}
}

// RGB returns the colour channels as a triple.
func (u Unit) RGB() [3]float64 { return [3]float64{u.R, u.G, u.B} }

// NRGBA clamps u to [0, 1] and converts it to 8-bit non-premultiplied form.
func (u Unit) NRGBA() stdcolor.NRGBA {
	return stdcolor.NRGBA{R: to8(u.R), G: to8(u.G), B: to8(u.B), A: to8(u.A)}
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
