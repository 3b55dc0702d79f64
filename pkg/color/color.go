// Package color provides the 8-bit colour value used by books and racks.
//
// A [Color] holds exactly three channels and an optional alpha byte. It is
// immutable; every method returns a new value. Two views are offered for
// the rendering layers:
//
//   - [Color.Hex] gives the "#rrggbb" or "#rrggbbaa" form used in SVG output
//   - [Color.UnitInterval] gives the RGB channels scaled to [0, 1], the input
//     of the gradient engine
//
// [Unit] is the normalized RGBA sample type shared by colour stops and
// rasterized gradient strips.
package color

import (
	"fmt"
	stdcolor "image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/bookrack/pkg/errors"
)

// Color is an 8-bit RGB colour with an optional alpha channel.
type Color struct {
	rgb      [3]uint8
	alpha    uint8
	hasAlpha bool
}

// New builds an opaque colour from exactly three channel values in 0..255.
func New(channels []int) (Color, error) {
	if len(channels) != 3 {
		return Color{}, errors.New(errors.ErrCodeConstruction, "color needs exactly 3 channels, got %d", len(channels))
	}
	var c Color
	for i, v := range channels {
		if v < 0 || v > 255 {
			return Color{}, errors.New(errors.ErrCodeConstruction, "color channel %d out of range 0..255: %d", i, v)
		}
		c.rgb[i] = uint8(v)
	}
	return c, nil
}

// NewWithAlpha is like [New] but also sets the alpha channel.
func NewWithAlpha(channels []int, alpha int) (Color, error) {
	c, err := New(channels)
	if err != nil {
		return Color{}, err
	}
	if alpha < 0 || alpha > 255 {
		return Color{}, errors.New(errors.ErrCodeConstruction, "color alpha out of range 0..255: %d", alpha)
	}
	return c.WithAlpha(uint8(alpha)), nil
}

// RGB returns an opaque colour from three bytes.
func RGB(r, g, b uint8) Color {
	return Color{rgb: [3]uint8{r, g, b}}
}

// Gray returns the opaque gray with all channels set to v.
func Gray(v uint8) Color {
	return RGB(v, v, v)
}

// WithAlpha returns a copy of c with the alpha channel set.
func (c Color) WithAlpha(a uint8) Color {
	c.alpha = a
	c.hasAlpha = true
	return c
}

// WithoutAlpha returns a copy of c with no alpha channel.
func (c Color) WithoutAlpha() Color {
	c.alpha = 0
	c.hasAlpha = false
	return c
}

// Channels returns the three RGB bytes.
func (c Color) Channels() [3]uint8 { return c.rgb }

// Alpha returns the alpha byte and whether one is set.
func (c Color) Alpha() (uint8, bool) { return c.alpha, c.hasAlpha }

// Hex returns "#rrggbb", or "#rrggbbaa" when an alpha channel is set.
func (c Color) Hex() string {
	if c.hasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.rgb[0], c.rgb[1], c.rgb[2], c.alpha)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.rgb[0], c.rgb[1], c.rgb[2])
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// UnitInterval returns the RGB channels divided by 255.
func (c Color) UnitInterval() [3]float64 {
	return [3]float64{
		float64(c.rgb[0]) / 255,
		float64(c.rgb[1]) / 255,
		float64(c.rgb[2]) / 255,
	}
}

// Opacity returns alpha/255, or 1 when no alpha channel is set.
func (c Color) Opacity() float64 {
	if !c.hasAlpha {
		return 1
	}
	return float64(c.alpha) / 255
}

// Unit returns c as a normalized RGBA sample.
func (c Color) Unit() Unit {
	rgb := c.UnitInterval()
	return Unit{R: rgb[0], G: rgb[1], B: rgb[2], A: c.Opacity()}
}

// NRGBA converts c to the standard library's non-premultiplied colour.
func (c Color) NRGBA() stdcolor.NRGBA {
	a := uint8(255)
	if c.hasAlpha {
		a = c.alpha
	}
	return stdcolor.NRGBA{R: c.rgb[0], G: c.rgb[1], B: c.rgb[2], A: a}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading "#" is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, errors.New(errors.ErrCodeConstruction, "invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeConstruction, err, "invalid hex color %q", s)
	}
	if len(h) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return RGB(uint8(v>>24), uint8(v>>16), uint8(v>>8)).WithAlpha(uint8(v)), nil
}

// MustParseHex is like [ParseHex] but panics on error. Intended for constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
