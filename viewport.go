package mandel

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidViewport is returned before any pixel is computed when a Viewport
// cannot be rendered.
var ErrInvalidViewport = errors.New("invalid viewport")

const (
	// DefaultZoom is the plane distance between neighbouring pixels.
	DefaultZoom = 0.004
	// DefaultCap is the default iteration cap.
	DefaultCap = 127
	// MaxCap bounds the iteration cap; the palette holds MaxCap+1 entries.
	MaxCap = 1 << 20
	// PanStep is how many pixels one Pan moves the view.
	PanStep = 40
	// ZoomFactor scales Zoom on every ZoomIn.
	ZoomFactor = 0.9
)

// Direction of a Pan.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Viewport maps a Width×Height pixel grid onto the complex plane.
//
// Zoom is the plane distance between two neighbouring pixels, used as a
// multiplier. OffsetX is the real coordinate of the centre pixel and OffsetY
// the imaginary one:
//
//	re = (x - Width/2)·Zoom + OffsetX
//	im = (y - Height/2)·Zoom + OffsetY
//
// Viewport is a value: controls return a new one and a render pass works on
// its own copy.
type Viewport struct {
	Width, Height    int
	Zoom             float64
	OffsetX, OffsetY float64
	Cap              int
}

// DefaultViewport is the starting view for a w×h surface.
func DefaultViewport(w, h int) Viewport {
	return Viewport{
		Width:  w,
		Height: h,
		Zoom:   DefaultZoom,
		Cap:    DefaultCap,
	}
}

// Validate reports whether v can be rendered.
func (v Viewport) Validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0 || v.Width > math.MaxInt/4/v.Height:
		return errors.Wrapf(ErrInvalidViewport, "size %dx%d", v.Width, v.Height)
	case v.Cap <= 0 || v.Cap > MaxCap:
		return errors.Wrapf(ErrInvalidViewport, "cap %d", v.Cap)
	case v.Zoom == 0 || !finite(v.Zoom):
		return errors.Wrapf(ErrInvalidViewport, "zoom %v", v.Zoom)
	case !finite(v.OffsetX) || !finite(v.OffsetY):
		return errors.Wrapf(ErrInvalidViewport, "offset (%v, %v)", v.OffsetX, v.OffsetY)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PixelToComplex returns the plane coordinate sampled by pixel (x, y).
func (v Viewport) PixelToComplex(x, y int) (re, im float64) {
	re = (float64(x)-float64(v.Width)/2)*v.Zoom + v.OffsetX
	im = (float64(y)-float64(v.Height)/2)*v.Zoom + v.OffsetY
	return re, im
}

// ComplexToPixel is the inverse of PixelToComplex. The result is fractional
// for points between pixel samples.
func (v Viewport) ComplexToPixel(re, im float64) (x, y float64) {
	x = (re-v.OffsetX)/v.Zoom + float64(v.Width)/2
	y = (im-v.OffsetY)/v.Zoom + float64(v.Height)/2
	return x, y
}

// Bounds is the plane rectangle spanned by the pixel samples.
func (v Viewport) Bounds() Region {
	x0, y0 := v.PixelToComplex(0, 0)
	x1, y1 := v.PixelToComplex(v.Width-1, v.Height-1)
	return Region{
		Xmin: math.Min(x0, x1), Xmax: math.Max(x0, x1),
		Ymin: math.Min(y0, y1), Ymax: math.Max(y0, y1),
	}
}

// Pan moves the view PanStep pixels in dir.
func (v Viewport) Pan(dir Direction) Viewport {
	step := PanStep * v.Zoom
	switch dir {
	case Up:
		v.OffsetY -= step
	case Down:
		v.OffsetY += step
	case Left:
		v.OffsetX -= step
	case Right:
		v.OffsetX += step
	}
	return v
}

// ZoomIn magnifies the view around its centre.
func (v Viewport) ZoomIn() Viewport {
	v.Zoom *= ZoomFactor
	return v
}

// ZoomOut is the inverse of ZoomIn.
func (v Viewport) ZoomOut() Viewport {
	v.Zoom /= ZoomFactor
	return v
}

// WithCap returns v with a new iteration cap.
func (v Viewport) WithCap(n int) Viewport {
	v.Cap = n
	return v
}

// Resize keeps centre and zoom and changes the pixel grid.
func (v Viewport) Resize(w, h int) Viewport {
	v.Width, v.Height = w, h
	return v
}

// CenteredOn frames r so it fits entirely inside the pixel grid.
func (v Viewport) CenteredOn(r Region) Viewport {
	v.OffsetX, v.OffsetY = r.Center()
	if v.Width > 0 && v.Height > 0 {
		v.Zoom = math.Max(r.Dx()/float64(v.Width), r.Dy()/float64(v.Height))
	}
	return v
}
