package color

import (
	"encoding/json"
	"math"
	"testing"
)

const eps = 1e-5

func assertXYZ(t *testing.T, got Color, x, y, z, tol float64) {
	t.Helper()
	if math.Abs(got.X()-x) > tol || math.Abs(got.Y()-y) > tol || math.Abs(got.Z()-z) > tol {
		t.Errorf("got %v, want xyz(%f, %f, %f)", got, x, y, z)
	}
}

func TestNewClampsNegative(t *testing.T) {
	c := New(-1, 0.5, 2)
	assertXYZ(t, c, 0, 0.5, 2, 0)
}

func TestColorJSON(t *testing.T) {
	c := New(0.359547, 0.452095, 0.80945)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"x":0.359547,"y":0.452095,"z":0.80945}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Color
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != c {
		t.Errorf("Unmarshal = %v, want %v", back, c)
	}
}

func TestColorJSONClampsOnLoad(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`{"x": -0.5, "y": 1.5, "z": 0.25}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	assertXYZ(t, c, 0, 1.5, 0.25, 0)
}

func TestColorJSONInvalid(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`{"x": "red"}`), &c); err == nil {
		t.Error("Unmarshal error = nil, want error")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{"with hash", "#eb6f92", RGB{235, 111, 146}, false},
		{"without hash", "eb6f92", RGB{235, 111, 146}, false},
		{"black", "#000000", RGB{0, 0, 0}, false},
		{"white", "#ffffff", RGB{255, 255, 255}, false},
		{"uppercase", "#AABBCC", RGB{170, 187, 204}, false},
		{"too short", "#fff", RGB{}, true},
		{"too long", "#aabbccdd", RGB{}, true},
		{"invalid chars", "#zzzzzz", RGB{}, true},
		{"empty", "", RGB{}, true},
		{"padded", "# 1 1 1", RGB{}, true},
		{"trailing space", "#eb6f9 ", RGB{}, true},
		{"sign", "#+b6f92", RGB{}, true},
		{"underscore", "#eb_f92", RGB{}, true},
		{"prefix", "#0xeb6f", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBFormatting(t *testing.T) {
	c := RGB{235, 111, 146}
	if got := c.Hex(); got != "#eb6f92" {
		t.Errorf("Hex() = %q, want %q", got, "#eb6f92")
	}
	if got := c.HexBare(); got != "eb6f92" {
		t.Errorf("HexBare() = %q, want %q", got, "eb6f92")
	}
	if got := c.CSS(); got != "rgb(235, 111, 146)" {
		t.Errorf("CSS() = %q, want %q", got, "rgb(235, 111, 146)")
	}
	if got := (RGB{0, 5, 10}).Hex(); got != "#00050a" {
		t.Errorf("Hex() = %q, want %q", got, "#00050a")
	}
}

func TestBrighten(t *testing.T) {
	tests := []struct {
		name   string
		color  RGB
		amount float64
		want   RGB
	}{
		{"gray by 20%", RGB{128, 128, 128}, 0.2, RGB{179, 179, 179}},
		{"black by 40%", RGB{0, 0, 0}, 0.4, RGB{102, 102, 102}},
		{"red saturates", RGB{255, 0, 0}, 0.1, RGB{255, 0, 0}},
		{"white stays white", RGB{255, 255, 255}, 0.5, RGB{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Brighten(FromRGB(tt.color), tt.amount).RGB()
			if got != tt.want {
				t.Errorf("Brighten(%v, %v) = %v, want %v", tt.color, tt.amount, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name   string
		color  RGB
		amount float64
		want   RGB
	}{
		{"red by 20%", RGB{255, 0, 0}, 0.2, RGB{204, 0, 0}},
		{"black stays black", RGB{0, 0, 0}, 0.5, RGB{0, 0, 0}},
		{"past zero", RGB{128, 128, 128}, 2, RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Darken(FromRGB(tt.color), tt.amount).RGB()
			if got != tt.want {
				t.Errorf("Darken(%v, %v) = %v, want %v", tt.color, tt.amount, got, tt.want)
			}
		})
	}
}

func TestDim(t *testing.T) {
	c := New(0.4, 0.5, 0.6)

	assertXYZ(t, Dim(c, 0.5), 0.2, 0.25, 0.3, eps)
	assertXYZ(t, Dim(c, 2), 0.4, 0.5, 0.6, eps)
	assertXYZ(t, Dim(c, -1), 0, 0, 0, 0)
}
