// Package color implements the canonical color value used across lumen and
// its conversions to and from 8-bit RGB, HSV and correlated color
// temperature.
//
// Color (CIE 1931 XYZ under D65) is the hub: every other representation is
// derived from it on demand and converted back into it. HSV and temperature
// go through RGB, so the two sRGB matrices in rgb.go are the only place the
// color space is defined.
package color

import (
	"encoding/json"
	"fmt"

	"github.com/jsvensson/lumen/internal/scalar"
)

// Color is a CIE 1931 XYZ tristimulus value under the D65 reference white.
// Components are non-negative with no upper bound; values above 1 denote
// overexposed or out-of-gamut light. A Color is immutable.
type Color struct {
	x, y, z scalar.NonNeg
}

// New returns the color with the given tristimulus values, clamping
// negative components to 0.
func New(x, y, z float64) Color {
	return Color{
		x: scalar.NewNonNeg(x),
		y: scalar.NewNonNeg(y),
		z: scalar.NewNonNeg(z),
	}
}

// X returns the X tristimulus value.
func (c Color) X() float64 { return c.x.Float64() }

// Y returns the Y (luminance) tristimulus value.
func (c Color) Y() float64 { return c.y.Float64() }

// Z returns the Z tristimulus value.
func (c Color) Z() float64 { return c.z.Float64() }

func (c Color) String() string {
	return fmt.Sprintf("xyz(%.6f, %.6f, %.6f)", c.X(), c.Y(), c.Z())
}

type colorJSON struct {
	X scalar.NonNeg `json:"x"`
	Y scalar.NonNeg `json:"y"`
	Z scalar.NonNeg `json:"z"`
}

// MarshalJSON encodes the color as {"x":…,"y":…,"z":…}.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorJSON{X: c.x, Y: c.y, Z: c.z})
}

// UnmarshalJSON decodes {"x":…,"y":…,"z":…}, clamping each component.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw colorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding color: %w", err)
	}
	*c = Color{x: raw.X, y: raw.Y, z: raw.Z}
	return nil
}
