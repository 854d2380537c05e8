package mandel

import (
	"testing"
)

func TestIterateInsideSet(t *testing.T) {
	const maxIter = 500
	points := []struct {
		name   string
		re, im float64
	}{
		{"origin", 0, 0},
		{"cardioid", -0.5, 0},
		{"cardioid off axis", -0.1, 0.1},
		{"cardioid right", 0.2, 0},
		{"period 2 bulb", -1, 0},
		{"period 2 bulb off axis", -1.1, 0.1},
	}
	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			if got := Iterate(p.re, p.im, maxIter); got != maxIter {
				t.Errorf("Iterate(%v, %v) = %d, want cap %d", p.re, p.im, got, maxIter)
			}
		})
	}
}

func TestIterateEscapes(t *testing.T) {
	tests := []struct {
		name     string
		re, im   float64
		maxCount int
	}{
		{"far outside", 3, 3, 1},
		{"corner of 4x4 view", -2, -2, 0},
		{"on the radius", 2, 0, 1},
		{"just outside cardioid", 0.3, 0, 60},
		{"imaginary axis", 0, 1.1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Iterate(tt.re, tt.im, 1000)
			if got > tt.maxCount {
				t.Errorf("Iterate(%v, %v) = %d, want <= %d", tt.re, tt.im, got, tt.maxCount)
			}
		})
	}
}

func TestIterateZeroCap(t *testing.T) {
	if got := Iterate(0, 0, 0); got != 0 {
		t.Errorf("Iterate with cap 0 = %d, want 0", got)
	}
}

// Moving away from the set along the positive real axis never makes a point
// survive longer.
func TestIterateMonotoneOutward(t *testing.T) {
	prev := Iterate(0.26, 0, 10000)
	for x := 0.3; x <= 3.0; x += 0.05 {
		got := Iterate(x, 0, 10000)
		if got > prev {
			t.Fatalf("Iterate(%v, 0) = %d after %d closer in", x, got, prev)
		}
		prev = got
	}
}

func BenchmarkIterate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Iterate(-0.7436, 0.1318, 1000)
	}
}
