package mandel

import (
	"errors"
	"image/color"
	"reflect"
	"testing"
)

func TestBuildPaletteLayout(t *testing.T) {
	const maxIter = 50
	p, err := BuildPalette(maxIter)
	if err != nil {
		t.Fatalf("BuildPalette: %v", err)
	}

	if p.Len() != maxIter+1 {
		t.Errorf("Expected %d entries, got %d", maxIter+1, p.Len())
	}
	if p.Cap() != maxIter {
		t.Errorf("Expected cap %d, got %d", maxIter, p.Cap())
	}
	if got := p.At(0); got != FirstCheckColor {
		t.Errorf("At(0) = %v, want first-check colour %v", got, FirstCheckColor)
	}
	if got := p.At(maxIter); got != InteriorColor {
		t.Errorf("At(cap) = %v, want interior colour %v", got, InteriorColor)
	}
	for _, c := range []int{-1, maxIter + 1, 1 << 20} {
		if got := p.At(c); got != InteriorColor {
			t.Errorf("At(%d) = %v, want interior colour", c, got)
		}
	}
	for i, c := range p.Colors() {
		if c.A != 255 {
			t.Errorf("entry %d has alpha %d", i, c.A)
		}
	}
}

func TestBandedPaletteRepeatsEvery16(t *testing.T) {
	p, err := BuildPalette(200)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i+16 < 200; i++ {
		if p.At(i) != p.At(i+16) {
			t.Fatalf("At(%d) = %v differs from At(%d) = %v", i, p.At(i), i+16, p.At(i+16))
		}
	}
	if p.At(1) == p.At(2) {
		t.Errorf("neighbouring bands should differ")
	}
	if p.At(16) != bands[0] {
		t.Errorf("At(16) = %v, want base colour 0 %v", p.At(16), bands[0])
	}
}

func TestPaletteDeterministic(t *testing.T) {
	for _, s := range []Scheme{SchemeBanded, SchemeRamp, SchemeGradient} {
		t.Run(s.String(), func(t *testing.T) {
			a, err := NewPalette(300, s)
			if err != nil {
				t.Fatal(err)
			}
			b, err := NewPalette(300, s)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(a.Colors(), b.Colors()) {
				t.Errorf("two builds of the %s palette differ", s)
			}
		})
	}
}

func TestRampPalette(t *testing.T) {
	p, err := NewPalette(DefaultCap, SchemeRamp)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		count int
		want  color.RGBA
	}{
		{0, FirstCheckColor},
		{1, color.RGBA{240, 0, 240, 255}},
		{15, color.RGBA{16, 0, 16, 255}},
		{16, color.RGBA{0, 0, 255, 255}},
		{24, color.RGBA{0, 128, 127, 255}},
		{32, color.RGBA{0, 255, 0, 255}},
		{63, color.RGBA{248, 7, 0, 255}},
		{100, color.RGBA{111, 0, 0, 255}},
		{DefaultCap, InteriorColor},
	}
	for _, tt := range tests {
		if got := p.At(tt.count); got != tt.want {
			t.Errorf("At(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}

	// beyond the ramp the channels clamp at zero instead of wrapping
	big, err := NewPalette(400, SchemeRamp)
	if err != nil {
		t.Fatal(err)
	}
	if got := big.At(300); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("At(300) = %v, want clamped black", got)
	}
}

func TestGradientPalette(t *testing.T) {
	p, err := NewPalette(64, SchemeGradient)
	if err != nil {
		t.Fatal(err)
	}
	distinct := make(map[color.RGBA]struct{})
	for i := 1; i < 64; i++ {
		distinct[p.At(i)] = struct{}{}
	}
	if len(distinct) < 32 {
		t.Errorf("gradient should be mostly distinct, got %d colours", len(distinct))
	}
}

func TestPaletteCapOne(t *testing.T) {
	p, err := BuildPalette(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []color.RGBA{FirstCheckColor, InteriorColor}
	if !reflect.DeepEqual(p.Colors(), want) {
		t.Errorf("Colors() = %v, want %v", p.Colors(), want)
	}
}

func TestNewPaletteErrors(t *testing.T) {
	if _, err := BuildPalette(0); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("BuildPalette(0) error = %v, want ErrInvalidViewport", err)
	}
	if _, err := BuildPalette(MaxCap + 1); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("BuildPalette(MaxCap+1) error = %v, want ErrInvalidViewport", err)
	}
	if _, err := NewPalette(10, Scheme(42)); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestParseScheme(t *testing.T) {
	for _, s := range []Scheme{SchemeBanded, SchemeRamp, SchemeGradient} {
		got, err := ParseScheme(s.String())
		if err != nil {
			t.Fatalf("ParseScheme(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseScheme(%q) = %v", s, got)
		}
	}
	if _, err := ParseScheme("sepia"); err == nil {
		t.Error("expected error for unknown scheme name")
	}
	if got := Scheme(9).String(); got != "Scheme(9)" {
		t.Errorf("String() = %q", got)
	}
}
