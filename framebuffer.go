package mandel

import (
	"bytes"
	"image"
	"image/color"
)

// Framebuffer is the W×H grid of colours produced by a render pass.
//
// It is overwritten in place on every pass. During a pass each pixel has
// exactly one writer, so the pixels themselves are not guarded; callers must
// not read it until Render has returned.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a w×h framebuffer with origin (0, 0).
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (fb *Framebuffer) Width() int              { return fb.img.Rect.Dx() }
func (fb *Framebuffer) Height() int             { return fb.img.Rect.Dy() }
func (fb *Framebuffer) Bounds() image.Rectangle { return fb.img.Rect }

// Image exposes the backing image for presentation and export.
func (fb *Framebuffer) Image() *image.RGBA { return fb.img }

// At returns the colour at (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Set writes one pixel. Tiles write through Set, so concurrent calls are fine
// as long as they address different pixels.
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	fb.img.SetRGBA(x, y, c)
}

// Resize reallocates the buffer when the dimensions change and otherwise
// keeps the existing pixels.
func (fb *Framebuffer) Resize(w, h int) {
	if fb.Width() == w && fb.Height() == h {
		return
	}
	fb.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Equal reports whether two framebuffers hold byte-identical pixels.
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	if fb.img.Rect != other.img.Rect {
		return false
	}
	return bytes.Equal(fb.img.Pix, other.img.Pix)
}
