package mandel

// Renderer owns the palette and framebuffer for a stream of render passes.
// The palette is rebuilt when the cap or scheme changes and the framebuffer
// is reallocated when the resolution changes.
//
// A Renderer runs one pass at a time. The returned Framebuffer is reused by
// the next call to Render.
type Renderer struct {
	sched  *Scheduler
	scheme Scheme
	pal    *Palette
	fb     *Framebuffer
	last   Stats
}

// NewRenderer uses sched, or a default Scheduler when sched is nil.
func NewRenderer(sched *Scheduler, scheme Scheme) *Renderer {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Renderer{sched: sched, scheme: scheme}
}

// Render computes v and returns the framebuffer holding the result.
func (r *Renderer) Render(v Viewport) (*Framebuffer, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if r.pal == nil || r.pal.Cap() != v.Cap || r.pal.Scheme() != r.scheme {
		pal, err := NewPalette(v.Cap, r.scheme)
		if err != nil {
			return nil, err
		}
		r.pal = pal
	}
	if r.fb == nil {
		r.fb = NewFramebuffer(v.Width, v.Height)
	} else {
		r.fb.Resize(v.Width, v.Height)
	}

	stats, err := r.sched.Render(v, r.pal, r.fb)
	if err != nil {
		return nil, err
	}
	r.last = stats
	return r.fb, nil
}

// SetScheme switches palette scheme; it takes effect on the next Render.
func (r *Renderer) SetScheme(s Scheme) { r.scheme = s }

// Scheme is the palette scheme in use.
func (r *Renderer) Scheme() Scheme { return r.scheme }

// Palette returns the palette of the last pass, nil before the first one.
func (r *Renderer) Palette() *Palette { return r.pal }

// LastStats describes the last successful pass.
func (r *Renderer) LastStats() Stats { return r.last }

// Render computes v into a fresh framebuffer with the banded palette and the
// default scheduler.
func Render(v Viewport) (*Framebuffer, error) {
	return NewRenderer(nil, SchemeBanded).Render(v)
}
