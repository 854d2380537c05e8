// Package mandel computes Mandelbrot escape-time images.
//
// A render pass takes a Viewport, splits its pixel grid into disjoint tiles,
// evaluates every pixel of every tile concurrently and writes the palette
// colour of its escape count into a Framebuffer. Presentation and export live
// in other packages; nothing here touches a screen or a file.
package mandel

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the midpoint of the region.
func (r Region) Center() (re, im float64) {
	return (r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2
}

// Dx and Dy are the extents along the real and imaginary axes.
func (r Region) Dx() float64 { return r.Xmax - r.Xmin }
func (r Region) Dy() float64 { return r.Ymax - r.Ymin }

// Classic regions / landmarks in the Mandelbrot set
var (
	// Whole set
	FullSet = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Landmark is a named Region.
type Landmark struct {
	Name   string
	Region Region
}

var landmarks = []Landmark{
	{"full", FullSet},
	{"seahorse", SeahorseValley},
	{"elephant", ElephantValley},
	{"spiral", SpiralMinibrot},
	{"triple", TripleSpiral},
	{"dragon", ValleyOfTheDragon},
	{"minibrot", MinibrotInMiniSpiral},
}

// Landmarks returns the known regions in a stable order.
func Landmarks() []Landmark {
	out := make([]Landmark, len(landmarks))
	copy(out, landmarks)
	return out
}

// LookupLandmark finds a landmark by name.
func LookupLandmark(name string) (Region, bool) {
	for _, l := range landmarks {
		if l.Name == name {
			return l.Region, true
		}
	}
	return Region{}, false
}
