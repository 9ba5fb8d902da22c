package color

import "github.com/jsvensson/lumen/internal/scalar"

// Brighten returns c with its HSV value raised by amount, saturating at 1.
func Brighten(c Color, amount float64) Color {
	hsv := c.HSV()
	return FromHSV(NewHSV(hsv.H.Float64(), hsv.S.Float64(), hsv.V.Float64()+amount))
}

// Darken returns c with its HSV value lowered by amount, saturating at 0.
func Darken(c Color, amount float64) Color {
	return Brighten(c, -amount)
}

// Dim scales the luminance of c by level, which is clamped to [0, 1].
// Unlike Brighten it works on XYZ directly and keeps chromaticity exact.
func Dim(c Color, level float64) Color {
	k := scalar.NewNorm(level).Float64()
	return New(c.X()*k, c.Y()*k, c.Z()*k)
}
