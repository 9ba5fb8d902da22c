package color

import (
	"math"
	"testing"
)

const hsvEps = 1e-3

// Each band of HSV.RGB plus both sides of every band boundary.
var hsvFixtures = []struct {
	name    string
	hsv     HSV
	x, y, z float64
}{
	{"white", NewHSV(0, 0, 1), 0.950470, 1, 1.088830},
	{"red", NewHSV(0, 1, 1), 0.412456, 0.212673, 0.019334},
	{"green", NewHSV(1.0/3.0, 1, 1), 0.357576, 0.715152, 0.119192},
	{"blue", NewHSV(2.0/3.0, 1, 1), 0.180437, 0.072175, 0.950304},
	{"black", NewHSV(0, 0, 0), 0, 0, 0},
	{"random1", NewHSV(0.538462, 0.681223, 0.898039), 0.359547, 0.452095, 0.809450},
	{"random2", NewHSV(1.0/9.0, 1, 1), 0.556194, 0.500148, 0.067246},
	{"band1 start", NewHSV(1.0/360.0, 1, 1), 0.412891, 0.213541, 0.019479},
	{"band1 end", NewHSV(59.0/360.0, 1, 1), 0.757405, 0.902570, 0.134317},
	{"band2 start", NewHSV(61.0/360.0, 1, 1), 0.755467, 0.920315, 0.137843},
	{"band2 center low", NewHSV(119.0/360.0, 1, 1), 0.358077, 0.715410, 0.119215},
	{"band2 center high", NewHSV(121.0/360.0, 1, 1), 0.357795, 0.715240, 0.120346},
	{"band2 end", NewHSV(179.0/360.0, 1, 1), 0.531642, 0.784778, 1.035937},
	{"band3 start", NewHSV(181.0/360.0, 1, 1), 0.525386, 0.762072, 1.065287},
	{"band3 center low", NewHSV(239.0/360.0, 1, 1), 0.180872, 0.073043, 0.950449},
	{"band3 center high", NewHSV(241.0/360.0, 1, 1), 0.180938, 0.072433, 0.950328},
	{"band3 end", NewHSV(299.0/360.0, 1, 1), 0.578329, 0.277338, 0.968955},
	{"band4 start", NewHSV(301.0/360.0, 1, 1), 0.586522, 0.282299, 0.936079},
	{"band4 end", NewHSV(359.0/360.0, 1, 1), 0.412676, 0.212760, 0.020488},
}

func TestFromHSV(t *testing.T) {
	for _, tt := range hsvFixtures {
		t.Run(tt.name, func(t *testing.T) {
			assertXYZ(t, FromHSV(tt.hsv), tt.x, tt.y, tt.z, eps)
		})
	}
}

func assertHSV(t *testing.T, got, want HSV) {
	t.Helper()
	if math.Abs(got.H.Float64()-want.H.Float64()) > hsvEps ||
		math.Abs(got.S.Float64()-want.S.Float64()) > hsvEps ||
		math.Abs(got.V.Float64()-want.V.Float64()) > hsvEps {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColorHSV(t *testing.T) {
	for _, tt := range hsvFixtures {
		t.Run(tt.name, func(t *testing.T) {
			assertHSV(t, New(tt.x, tt.y, tt.z).HSV(), tt.hsv)
		})
	}
}

func TestColorHSVOutOfGamut(t *testing.T) {
	assertHSV(t, New(1, 1, 1).HSV(), NewHSV(0.075758, 0.043137, 1))
}

func TestHSVRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 1, 30, 59, 60, 61, 90, 119, 120, 121, 150, 179, 180, 181, 210, 239, 240, 241, 270, 299, 300, 301, 330, 359} {
		in := NewHSV(deg/360, 1, 1)
		got := FromHSV(in).HSV()
		assertHSV(t, got, in)
	}
}

func TestRGBHSV(t *testing.T) {
	tests := []struct {
		name    string
		rgb     RGB
		h, s, v float64
	}{
		{"red", RGB{255, 0, 0}, 0, 1, 1},
		{"green", RGB{0, 255, 0}, 1.0 / 3.0, 1, 1},
		{"blue", RGB{0, 0, 255}, 2.0 / 3.0, 1, 1},
		{"yellowish", RGB{240, 240, 208}, 1.0 / 6.0, 4.0 / 30.0, 240.0 / 255.0},
		{"dark green", RGB{51, 92, 33}, (-18.0/59.0 + 2.0) / 6.0, 59.0 / 92.0, 92.0 / 255.0},
		{"red max, blue over green", RGB{255, 0, 4}, 1 - 4.0/(6*255), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.HSV()
			if math.Abs(got.H.Float64()-tt.h) > 1e-8 ||
				math.Abs(got.S.Float64()-tt.s) > 1e-8 ||
				math.Abs(got.V.Float64()-tt.v) > 1e-8 {
				t.Errorf("%v.HSV() = %v, want hsv(%f, %f, %f)", tt.rgb, got, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestRGBHSVAchromatic(t *testing.T) {
	for v := 0; v < 256; v++ {
		got := RGB{uint8(v), uint8(v), uint8(v)}.HSV()
		if got.H.Float64() != 0 || got.S.Float64() != 0 {
			t.Fatalf("gray %d: HSV() = %v, want hue 0 saturation 0", v, got)
		}
		if want := float64(v) / 255; got.V.Float64() != want {
			t.Fatalf("gray %d: value = %v, want %v", v, got.V.Float64(), want)
		}
	}
}

func TestHSVRGBBands(t *testing.T) {
	tests := []struct {
		name string
		hsv  HSV
		want RGB
	}{
		{"band1", NewHSV(1.0/360.0, 1, 1), RGB{255, 4, 0}},
		{"band1 edge", NewHSV(59.0/360.0, 1, 1), RGB{255, 251, 0}},
		{"band2 edge", NewHSV(61.0/360.0, 1, 1), RGB{251, 255, 0}},
		{"band2 falling red", NewHSV(90.0/360.0, 1, 1), RGB{127, 255, 0}},
		{"band2 rising blue", NewHSV(150.0/360.0, 1, 1), RGB{0, 255, 128}},
		{"band3 falling green", NewHSV(210.0/360.0, 1, 1), RGB{0, 127, 255}},
		{"band3 rising red", NewHSV(270.0/360.0, 1, 1), RGB{128, 0, 255}},
		{"band4", NewHSV(330.0/360.0, 1, 1), RGB{255, 0, 128}},
		{"hue one is red", NewHSV(1, 1, 1), RGB{255, 0, 0}},
		{"gray", NewHSV(0.7, 0, 0.5), RGB{128, 128, 128}},
		{"clamped input", NewHSV(-1, 2, 2), RGB{255, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hsv.RGB(); got != tt.want {
				t.Errorf("%v.RGB() = %v, want %v", tt.hsv, got, tt.want)
			}
		})
	}
}

func TestHueOneStoredAsOne(t *testing.T) {
	h := NewHSV(1, 1, 1)
	if h.H.Float64() != 1 {
		t.Errorf("hue = %v, want 1", h.H.Float64())
	}
	if FromHSV(h) != FromHSV(NewHSV(0, 1, 1)) {
		t.Error("hue 1 and hue 0 should convert to the same color")
	}
}
