package mandel

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Scheme selects how escape counts in [1, cap) are coloured.
type Scheme int

const (
	// SchemeBanded cycles through a 16 colour ramp, giving contour rings.
	SchemeBanded Scheme = iota
	// SchemeRamp is a piecewise magenta, blue, green, red ramp over the first
	// 128 counts, clamped beyond that.
	SchemeRamp
	// SchemeGradient blends smoothly across the whole cap.
	SchemeGradient
)

var schemeNames = map[Scheme]string{
	SchemeBanded:   "banded",
	SchemeRamp:     "ramp",
	SchemeGradient: "gradient",
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme maps a scheme name back to its value.
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Errorf("unknown palette scheme %q", name)
}

var (
	// FirstCheckColor marks points that were outside the escape radius before
	// any iteration.
	FirstCheckColor = color.RGBA{R: 255, A: 255}
	// InteriorColor is used for points that never escaped.
	InteriorColor = color.RGBA{A: 255}
)

// bands is the 16 entry base table for SchemeBanded, brown through blue to
// yellow and back.
var bands = [16]color.RGBA{
	{66, 30, 15, 255},
	{25, 7, 26, 255},
	{9, 1, 47, 255},
	{4, 4, 73, 255},
	{0, 7, 100, 255},
	{12, 44, 138, 255},
	{24, 82, 177, 255},
	{57, 125, 209, 255},
	{134, 181, 229, 255},
	{211, 236, 248, 255},
	{241, 233, 191, 255},
	{248, 201, 95, 255},
	{255, 170, 0, 255},
	{204, 128, 0, 255},
	{153, 87, 0, 255},
	{106, 52, 3, 255},
}

// gradientStops are blended in HCL space for SchemeGradient.
var gradientStops = []colorful.Color{
	{R: 0.00, G: 0.03, B: 0.39},
	{R: 0.13, G: 0.42, B: 0.80},
	{R: 0.93, G: 1.00, B: 1.00},
	{R: 1.00, G: 0.67, B: 0.00},
	{R: 0.00, G: 0.01, B: 0.01},
}

// Palette maps an escape count in [0, cap] to a colour. It is immutable once
// built and safe for concurrent reads.
type Palette struct {
	cap    int
	scheme Scheme
	colors []color.RGBA
}

// BuildPalette builds the banded palette for maxIter.
func BuildPalette(maxIter int) (*Palette, error) {
	return NewPalette(maxIter, SchemeBanded)
}

// NewPalette builds a palette of maxIter+1 entries: index 0 is FirstCheckColor,
// index maxIter is InteriorColor and everything in between follows scheme.
func NewPalette(maxIter int, scheme Scheme) (*Palette, error) {
	if maxIter <= 0 || maxIter > MaxCap {
		return nil, errors.Wrapf(ErrInvalidViewport, "palette cap %d", maxIter)
	}
	if _, ok := schemeNames[scheme]; !ok {
		return nil, errors.Errorf("unknown palette scheme %d", int(scheme))
	}

	colors := make([]color.RGBA, maxIter+1)
	colors[0] = FirstCheckColor
	for i := 1; i < maxIter; i++ {
		switch scheme {
		case SchemeBanded:
			colors[i] = bands[i%len(bands)]
		case SchemeRamp:
			colors[i] = rampColor(i)
		case SchemeGradient:
			colors[i] = gradientColor(float64(i) / float64(maxIter))
		}
	}
	colors[maxIter] = InteriorColor

	return &Palette{cap: maxIter, scheme: scheme, colors: colors}, nil
}

// Cap is the iteration cap the palette was built for.
func (p *Palette) Cap() int { return p.cap }

// Scheme reports how the palette was built.
func (p *Palette) Scheme() Scheme { return p.scheme }

// Len is the number of entries, cap+1.
func (p *Palette) Len() int { return len(p.colors) }

// At returns the colour for an escape count. Counts outside [0, cap] get the
// interior colour.
func (p *Palette) At(count int) color.RGBA {
	if count < 0 || count >= len(p.colors) {
		return InteriorColor
	}
	return p.colors[count]
}

// Colors returns a copy of the table.
func (p *Palette) Colors() []color.RGBA {
	out := make([]color.RGBA, len(p.colors))
	copy(out, p.colors)
	return out
}

func rampColor(i int) color.RGBA {
	var r, g, b int
	switch {
	case i < 16:
		r, g, b = 16*(16-i), 0, 16*(16-i)
	case i < 32:
		r, g, b = 0, 16*(i-16), 16*(32-i)-1
	case i < 64:
		r, g, b = 8*(i-32), 8*(64-i)-1, 0
	default:
		r, g, b = 255-(i-64)*4, 0, 0
	}
	return color.RGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255}
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// gradientColor picks t in [0,1) along gradientStops.
func gradientColor(t float64) color.RGBA {
	segs := len(gradientStops) - 1
	pos := t * float64(segs)
	k := int(pos)
	if k >= segs {
		k = segs - 1
	}
	c := gradientStops[k].BlendHcl(gradientStops[k+1], pos-float64(k)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
