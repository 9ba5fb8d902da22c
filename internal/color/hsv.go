package color

import (
	"fmt"
	"math"

	"github.com/jsvensson/lumen/internal/scalar"
)

// epsilon is the float64 machine epsilon.
const epsilon = 0x1p-52

// HSV is a hue/saturation/value color. Hue is a fraction of the color wheel
// (0 red, 1/3 green, 2/3 blue). Hue is not cyclic: 1.0 is stored as 1.0
// but converts to the same RGB as 0.0.
type HSV struct {
	H, S, V scalar.Norm
}

// NewHSV returns the HSV color with each component clamped to [0, 1].
func NewHSV(h, s, v float64) HSV {
	return HSV{
		H: scalar.NewNorm(h),
		S: scalar.NewNorm(s),
		V: scalar.NewNorm(v),
	}
}

func (c HSV) String() string {
	return fmt.Sprintf("hsv(%.6f, %.6f, %.6f)", c.H.Float64(), c.S.Float64(), c.V.Float64())
}

// FromHSV converts an HSV color to the canonical color through RGB.
func FromHSV(c HSV) Color {
	return FromRGB(c.RGB())
}

// HSV converts c to HSV through RGB, inheriting its gamut clamping.
func (c Color) HSV() HSV {
	return c.RGB().HSV()
}

// HSV converts the 8-bit color to HSV.
func (c RGB) HSV() HSV {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	hi := math.Max(math.Max(r, g), b)
	lo := math.Min(math.Min(r, g), b)
	diff := hi - lo
	diff6 := 6 * diff

	var hue float64
	switch {
	case math.Abs(diff) < epsilon:
		hue = 0
	case math.Abs(hi-r) < epsilon:
		// Red max: keep hue in [0, 1) without a wrap step.
		if g >= b {
			hue = (g - b) / diff6
		} else {
			hue = 1 - (b-g)/diff6
		}
	case math.Abs(hi-g) < epsilon:
		hue = 1.0/3.0 + (b-r)/diff6
	default:
		hue = 2.0/3.0 + (r-g)/diff6
	}

	var saturation float64
	if math.Abs(hi) >= epsilon {
		saturation = diff / hi
	}

	return NewHSV(hue, saturation, hi/math.MaxUint8)
}

// RGB converts the HSV color to 8-bit RGB.
//
// Hue is split into four bands, [0, 1/6), [1/6, 1/2), [1/2, 5/6) and
// [5/6, 1]. The first and last are red-max; the middle two are green-max
// and blue-max and pick the rising channel from the sign of the offset to
// the band center.
func (c HSV) RGB() RGB {
	h := c.H.Float64()
	hi := c.V.Float64() * math.MaxUint8
	diff := c.S.Float64() * hi
	diff6 := 6 * diff

	var r, g, b float64
	switch {
	case math.Abs(diff) < epsilon:
		r, g, b = hi, hi, hi
	case h < 1.0/6.0:
		r = hi
		b = r - diff
		g = b + h*diff6
	case h < 0.5:
		g = hi
		lo := g - diff
		if off := (h - 1.0/3.0) * diff6; off >= 0 {
			r = lo
			b = r + off
		} else {
			b = lo
			r = b - off
		}
	case h < 5.0/6.0:
		b = hi
		lo := b - diff
		if off := (h - 2.0/3.0) * diff6; off >= 0 {
			g = lo
			r = g + off
		} else {
			r = lo
			g = r - off
		}
	default:
		r = hi
		g = r - diff
		b = g - (h-1)*diff6
	}

	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

// toByte rounds v to the nearest 8-bit value.
func toByte(v float64) uint8 {
	v = math.Round(v)
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}
