package color

import (
	"math"

	"github.com/jsvensson/lumen/internal/scalar"
)

// Temperature is a correlated color temperature in the units of McCamy's
// approximation. It tracks kelvin only inside the visible range the
// polynomial was fit to.
type Temperature = scalar.NonNeg

var warmWhite = New(1.009794293297943, 1.0, 0.6444857332448575)

// WarmWhite returns the fixed color FromTemperature returns.
func WarmWhite() Color {
	return warmWhite
}

// CCT returns the correlated color temperature of c using McCamy's cubic
// approximation. The result is unguarded: black, or a chromaticity with
// y close to 0.1858, yields NaN or ±Inf and ok is false.
func CCT(c Color) (t float64, ok bool) {
	s := c.X() + c.Y() + c.Z()
	xc := c.X() / s
	yc := c.Y() / s

	n := (xc - 0.3320) / (0.1858 - yc)
	t = 449*n*n*n + 3525*n*n + 6823.3*n + 5520.33

	return t, !math.IsNaN(t) && !math.IsInf(t, 0)
}

// Temperature returns the correlated color temperature of c. Degenerate
// results are clamped by Temperature's policy (NaN becomes 0); use CCT to
// tell them apart.
func (c Color) Temperature() Temperature {
	t, _ := CCT(c)
	return scalar.NewNonNeg(t)
}

// FromTemperature is a placeholder, not an inverse of Color.Temperature: it
// ignores its argument and always returns WarmWhite.
func FromTemperature(Temperature) Color {
	return warmWhite
}
