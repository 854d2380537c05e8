package mandel

// FrameRenderer produces the framebuffer for a viewport. Presentation layers
// depend on this rather than on *Renderer.
type FrameRenderer interface {
	Render(v Viewport) (*Framebuffer, error)
}

var _ FrameRenderer = (*Renderer)(nil)
