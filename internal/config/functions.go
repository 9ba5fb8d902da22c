package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/lumen/internal/color"
	"github.com/jsvensson/lumen/internal/scalar"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// colorType is the cty form of a color: an object with x, y and z.
var colorType = cty.Object(map[string]cty.Type{
	"x": cty.Number,
	"y": cty.Number,
	"z": cty.Number,
})

func colorVal(c color.Color) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"x": cty.NumberFloatVal(c.X()),
		"y": cty.NumberFloatVal(c.Y()),
		"z": cty.NumberFloatVal(c.Z()),
	})
}

func number(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// DecodeColor converts an evaluated color expression: a hex string or an
// object with numeric x, y and z attributes.
func DecodeColor(v cty.Value) (color.Color, error) {
	if v.IsNull() {
		return color.Color{}, fmt.Errorf("color is null")
	}
	if !v.IsWhollyKnown() {
		return color.Color{}, fmt.Errorf("color is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		rgb, err := color.ParseHex(v.AsString())
		if err != nil {
			return color.Color{}, err
		}
		return color.FromRGB(rgb), nil
	case t.IsObjectType() || t.IsMapType():
		obj, err := convert.Convert(v, colorType)
		if err != nil {
			return color.Color{}, fmt.Errorf("color object must have numeric x, y and z: %w", err)
		}
		return color.New(number(obj.GetAttr("x")), number(obj.GetAttr("y")), number(obj.GetAttr("z"))), nil
	default:
		return color.Color{}, fmt.Errorf("expected a hex string or color, got %s", t.FriendlyName())
	}
}

var colorParam = function.Parameter{Name: "color", Type: cty.DynamicPseudoType}

func numberParam(name string) function.Parameter {
	return function.Parameter{Name: name, Type: cty.Number}
}

// RGBFunc builds a color from 8-bit channels.
var RGBFunc = function.New(&function.Spec{
	Description: "Returns the color with the given red, green and blue channels (0 to 255).",
	Params:      []function.Parameter{numberParam("r"), numberParam("g"), numberParam("b")},
	Type:        function.StaticReturnType(colorType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		var ch [3]uint8
		for i, arg := range args {
			n := number(arg)
			if n < 0 || n > 255 || n != float64(int(n)) {
				return cty.NilVal, function.NewArgErrorf(i, "channel must be a whole number from 0 to 255, got %g", n)
			}
			ch[i] = uint8(n)
		}
		return colorVal(color.FromRGB(color.RGB{R: ch[0], G: ch[1], B: ch[2]})), nil
	},
})

// HexFunc parses a hex color string.
var HexFunc = function.New(&function.Spec{
	Description: `Parses a hex color like "#eb6f92".`,
	Params:      []function.Parameter{{Name: "hex", Type: cty.String}},
	Type:        function.StaticReturnType(colorType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		rgb, err := color.ParseHex(args[0].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		return colorVal(color.FromRGB(rgb)), nil
	},
})

// HSVFunc builds a color from hue, saturation and value, each clamped to [0, 1].
var HSVFunc = function.New(&function.Spec{
	Description: "Returns the color with the given hue, saturation and value (0 to 1).",
	Params:      []function.Parameter{numberParam("h"), numberParam("s"), numberParam("v")},
	Type:        function.StaticReturnType(colorType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		hsv := color.NewHSV(number(args[0]), number(args[1]), number(args[2]))
		return colorVal(color.FromHSV(hsv)), nil
	},
})

// XYZFunc builds a color from CIE XYZ coordinates.
var XYZFunc = function.New(&function.Spec{
	Description: "Returns the color with the given CIE XYZ coordinates. Negative values clamp to 0.",
	Params:      []function.Parameter{numberParam("x"), numberParam("y"), numberParam("z")},
	Type:        function.StaticReturnType(colorType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return colorVal(color.New(number(args[0]), number(args[1]), number(args[2]))), nil
	},
})

// KelvinFunc builds a color from a color temperature.
var KelvinFunc = function.New(&function.Spec{
	Description: "Returns the color of the given temperature in kelvin.",
	Params:      []function.Parameter{numberParam("kelvin")},
	Type:        function.StaticReturnType(colorType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return colorVal(color.FromTemperature(scalar.NewNonNeg(number(args[0])))), nil
	},
})

func makeShadeFunc(desc string, shade func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{colorParam, numberParam("amount")},
		Type:        function.StaticReturnType(colorType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := DecodeColor(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return colorVal(shade(c, number(args[1]))), nil
		},
	})
}

// BrightenFunc raises the HSV value of a color by amount.
// Usage: brighten("#hex", 0.1) or brighten(hsv(0, 1, 0.5), 0.1)
var BrightenFunc = makeShadeFunc("Brightens a color by the given amount (-1.0 to 1.0).", color.Brighten)

// DarkenFunc lowers the HSV value of a color by amount.
var DarkenFunc = makeShadeFunc("Darkens a color by the given amount (-1.0 to 1.0).", color.Darken)

// EvalContext returns the context light files and color expressions are
// evaluated in.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"warm_white": colorVal(color.WarmWhite()),
		},
		Functions: map[string]function.Function{
			"rgb":      RGBFunc,
			"hex":      HexFunc,
			"hsv":      HSVFunc,
			"xyz":      XYZFunc,
			"kelvin":   KelvinFunc,
			"brighten": BrightenFunc,
			"darken":   DarkenFunc,
		},
	}
}
