package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/lumen/internal/scalar"
)

// RGB is a display-ready, gamma-encoded sRGB color.
type RGB struct {
	R, G, B uint8
}

// Linear sRGB to XYZ (D65), Bradford-adapted constants from
// http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html
var rgbToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// XYZ (D65) to linear sRGB.
var xyzToRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

func mul(m *[3][3]float64, a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// linearize decodes one gamma-encoded 8-bit channel to linear light.
func linearize(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// encode gamma-encodes one linear channel and quantizes it to 8 bits.
// Anything outside [0, 1] after encoding is clamped.
func encode(v float64) uint8 {
	// Negative light is out of gamut; the curve is undefined there.
	if math.IsNaN(v) || v <= 0 {
		return 0
	}

	var out float64
	if v < 0.0031308 {
		out = 12.92 * v
	} else {
		out = 1.055*math.Pow(v, 1/2.4) - 0.055
	}

	switch {
	case out < 0:
		return 0
	case out > 1:
		return math.MaxUint8
	}
	return uint8(math.Round(math.MaxUint8 * out))
}

// FromRGB converts an sRGB color to the canonical color.
func FromRGB(c RGB) Color {
	x, y, z := mul(&rgbToXYZ, linearize(c.R), linearize(c.G), linearize(c.B))
	return Color{
		x: scalar.NewNonNeg(x),
		y: scalar.NewNonNeg(y),
		z: scalar.NewNonNeg(z),
	}
}

// RGB converts c to 8-bit sRGB. Colors outside the sRGB gamut are clamped
// per channel; no error is reported.
func (c Color) RGB() RGB {
	r, g, b := mul(&xyzToRGB, c.X(), c.Y(), c.Z())
	return RGB{R: encode(r), G: encode(g), B: encode(b)}
}

// ParseHex parses a hex color string like "#eb6f92" into an RGB.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c RGB) Hex() string {
	return "#" + c.HexBare()
}

// HexBare returns the color as a hex string without leading #.
func (c RGB) HexBare() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// CSS returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
