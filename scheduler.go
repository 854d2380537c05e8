package mandel

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrPaletteMismatch means the palette was built for a different cap.
	ErrPaletteMismatch = errors.New("palette does not match viewport cap")
	// ErrFramebufferSize means the framebuffer does not match the viewport.
	ErrFramebufferSize = errors.New("framebuffer does not match viewport size")
)

// Scheduler renders a viewport by splitting it into tiles and computing the
// tiles on a fixed pool of workers.
type Scheduler struct {
	cols, rows   int
	tileW, tileH int
	workers      int
	onTileRender func(tile image.Rectangle)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithGrid splits every frame into cols × rows tiles.
func WithGrid(cols, rows int) Option {
	return func(s *Scheduler) {
		s.cols, s.rows = cols, rows
		s.tileW, s.tileH = 0, 0
	}
}

// WithTileSize splits every frame into fixed w × h tiles instead of a grid.
// Non-positive sizes are ignored and the grid stays in effect.
func WithTileSize(w, h int) Option {
	return func(s *Scheduler) {
		if w <= 0 || h <= 0 {
			return
		}
		s.tileW, s.tileH = w, h
	}
}

// WithWorkers sets the number of goroutines computing tiles.
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		s.workers = n
	}
}

// WithOnTileRender registers a hook called from the worker goroutine after
// each tile is written. It must be safe for concurrent use.
func WithOnTileRender(fn func(tile image.Rectangle)) Option {
	return func(s *Scheduler) {
		s.onTileRender = fn
	}
}

// NewScheduler defaults to four quadrants and one worker per CPU.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		cols:    2,
		rows:    2,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Stats describes a finished render pass.
type Stats struct {
	Tiles   int
	Workers int
	Elapsed time.Duration
}

// Tiles returns the partition of v's pixel grid that Render would use.
func (s *Scheduler) Tiles(v Viewport) []image.Rectangle {
	r := image.Rect(0, 0, v.Width, v.Height)
	if s.tileW > 0 && s.tileH > 0 {
		return SplitRect(r, s.tileW, s.tileH)
	}
	return SplitGrid(r, s.cols, s.rows)
}

// Render computes every pixel of v into fb. Nothing is written unless v,
// pal and fb agree. It returns once every tile has been written.
func (s *Scheduler) Render(v Viewport, pal *Palette, fb *Framebuffer) (Stats, error) {
	if err := v.Validate(); err != nil {
		return Stats{}, err
	}
	if pal == nil || pal.Cap() != v.Cap {
		return Stats{}, errors.WithStack(ErrPaletteMismatch)
	}
	if fb == nil || fb.Width() != v.Width || fb.Height() != v.Height {
		return Stats{}, errors.WithStack(ErrFramebufferSize)
	}

	start := time.Now()
	tiles := s.Tiles(v)
	workers := min(s.workers, len(tiles))

	queue := make(chan image.Rectangle, len(tiles))
	for _, t := range tiles {
		queue <- t
	}
	close(queue)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for tile := range queue {
				renderTile(v, pal, fb, tile)
				if s.onTileRender != nil {
					s.onTileRender(tile)
				}
			}
		}()
	}
	wg.Wait()

	return Stats{
		Tiles:   len(tiles),
		Workers: workers,
		Elapsed: time.Since(start),
	}, nil
}

// renderTile writes every pixel of tile. The tile is in global coordinates.
func renderTile(v Viewport, pal *Palette, fb *Framebuffer, tile image.Rectangle) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			re, im := v.PixelToComplex(px, py)
			fb.Set(px, py, pal.At(Iterate(re, im, v.Cap)))
		}
	}
}
