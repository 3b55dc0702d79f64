package color

import (
	"math"
	"testing"

	"github.com/matzehuels/bookrack/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		channels []int
		wantErr  bool
	}{
		{"valid", []int{12, 200, 180}, false},
		{"bounds", []int{0, 255, 0}, false},
		{"two channels", []int{1, 2}, true},
		{"four channels", []int{1, 2, 3, 4}, true},
		{"negative", []int{-1, 0, 0}, true},
		{"too large", []int{0, 256, 0}, true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.channels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%v) error = %v, wantErr %v", tt.channels, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConstruction) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConstruction)
			}
		})
	}
}

func TestNewWithAlphaRange(t *testing.T) {
	if _, err := NewWithAlpha([]int{1, 2, 3}, 256); err == nil {
		t.Error("alpha 256 should fail")
	}
	c, err := NewWithAlpha([]int{1, 2, 3}, 180)
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := c.Alpha(); !ok || a != 180 {
		t.Errorf("Alpha() = %d, %v", a, ok)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{"red", RGB(255, 0, 0), "#ff0000"},
		{"red with alpha", RGB(255, 0, 0).WithAlpha(128), "#ff000080"},
		{"zero padded", RGB(1, 2, 3), "#010203"},
		{"zero alpha", RGB(0, 0, 0).WithAlpha(0), "#00000000"},
		{"lowercase", RGB(0xab, 0xcd, 0xef), "#abcdef"},
		{"alpha dropped", RGB(9, 9, 9).WithAlpha(9).WithoutAlpha(), "#090909"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHexFromNew(t *testing.T) {
	c, err := New([]int{255, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if c.Hex() != "#ff0000" {
		t.Errorf("Hex() = %q", c.Hex())
	}
	ca, err := NewWithAlpha([]int{255, 0, 0}, 128)
	if err != nil {
		t.Fatal(err)
	}
	if ca.Hex() != "#ff000080" {
		t.Errorf("Hex() = %q", ca.Hex())
	}
}

func TestUnitInterval(t *testing.T) {
	got := RGB(0, 128, 255).UnitInterval()
	want := [3]float64{0, 0.502, 1}
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Errorf("channel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnit(t *testing.T) {
	u := RGB(255, 0, 0).WithAlpha(51).Unit()
	if u.R != 1 || u.G != 0 || !approx(u.A, 0.2) {
		t.Errorf("Unit() = %+v", u)
	}
	if RGB(1, 1, 1).Unit().A != 1 {
		t.Error("opaque colour should have A = 1")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#eee1d1", "#eee1d1", false},
		{"eee1d1", "#eee1d1", false},
		{"#abc", "#aabbcc", false},
		{"#ff000080", "#ff000080", false},
		{"#FF0000", "#ff0000", false},
		{"#ff00", "", true},
		{"#gggggg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		c, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && c.Hex() != tt.want {
			t.Errorf("ParseHex(%q) = %q, want %q", tt.in, c.Hex(), tt.want)
		}
	}
}

func TestUnitNRGBA(t *testing.T) {
	got := Unit{R: 1.2, G: -0.1, B: 0.5, A: 1}.NRGBA()
	if got.R != 255 || got.G != 0 || got.B != 128 || got.A != 255 {
		t.Errorf("NRGBA() = %+v", got)
	}
}

func TestUnitScaleKeepsAlpha(t *testing.T) {
	u := Unit{R: 0.8, G: 0.4, B: 0.2, A: 0.5}.Scale(0.5)
	if !approx(u.R, 0.4) || !approx(u.G, 0.2) || !approx(u.B, 0.1) || u.A != 0.5 {
		t.Errorf("Scale() = %+v", u)
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	in := RGB(12, 200, 180).WithAlpha(180)
	text, err := in.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "#0cc8b4b4" {
		t.Errorf("MarshalText() = %s", text)
	}
	var out Color
	if err := out.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("UnmarshalText() = %v, want %v", out, in)
	}
	if err := out.UnmarshalText([]byte("nope")); err == nil {
		t.Error("invalid text should fail")
	}
}
