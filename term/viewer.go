// Package term presents Mandelbrot frames in a truecolor terminal through
// tcell and turns key presses into viewport changes.
//
// Every terminal cell shows two vertically stacked pixels: the upper half
// block is drawn with the top pixel as foreground and the bottom pixel as
// background.
package term

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/ppm"
)

const upperHalf = '▀'

// Action tells the event loop what to do after a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRedraw
	ActionSnapshot
)

// schemeSwitcher is implemented by *mandel.Renderer.
type schemeSwitcher interface {
	Scheme() mandel.Scheme
	SetScheme(mandel.Scheme)
}

// Viewer owns the current viewport and draws frames onto a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	renderer mandel.FrameRenderer

	view mandel.Viewport
	home mandel.Viewport

	// ShowStatus reserves the bottom row for a status line.
	ShowStatus bool
	// SnapshotPath is where ActionSnapshot writes; the extension picks the format.
	SnapshotPath string

	lastRender time.Duration
	message    string
}

// NewViewer starts at view, resized to fit the screen.
func NewViewer(screen tcell.Screen, r mandel.FrameRenderer, view mandel.Viewport) *Viewer {
	vw := &Viewer{
		screen:       screen,
		renderer:     r,
		view:         view,
		ShowStatus:   true,
		SnapshotPath: "mandel.ppm",
	}
	vw.Resize(screen.Size())
	vw.home = vw.view
	return vw
}

// Viewport is the view the next frame will show.
func (vw *Viewer) Viewport() mandel.Viewport { return vw.view }

// Resize maps a cols × rows terminal to the pixel grid.
func (vw *Viewer) Resize(cols, rows int) {
	if vw.ShowStatus {
		rows--
	}
	vw.view = vw.view.Resize(max(cols, 1), max(rows*2, 2))
}

// HandleKey applies a key press to the viewport.
func (vw *Viewer) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		vw.view = vw.view.Pan(mandel.Up)
	case tcell.KeyDown:
		vw.view = vw.view.Pan(mandel.Down)
	case tcell.KeyLeft:
		vw.view = vw.view.Pan(mandel.Left)
	case tcell.KeyRight:
		vw.view = vw.view.Pan(mandel.Right)
	case tcell.KeyRune:
		return vw.handleRune(ev.Rune())
	default:
		return ActionNone
	}
	return ActionRedraw
}

func (vw *Viewer) handleRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return ActionQuit
	case 'i', '+', '=':
		vw.view = vw.view.ZoomIn()
	case 'k', '-', '_':
		vw.view = vw.view.ZoomOut()
	case ']':
		vw.view = vw.view.WithCap(min(vw.view.Cap*2, mandel.MaxCap))
	case '[':
		vw.view = vw.view.WithCap(max(vw.view.Cap/2, 1))
	case 'r':
		vw.view = vw.home.Resize(vw.view.Width, vw.view.Height)
	case 'c':
		ss, ok := vw.renderer.(schemeSwitcher)
		if !ok {
			return ActionNone
		}
		ss.SetScheme((ss.Scheme() + 1) % (mandel.SchemeGradient + 1))
	case 's':
		vw.ShowStatus = !vw.ShowStatus
		vw.Resize(vw.screen.Size())
	case 'p':
		return ActionSnapshot
	default:
		if r >= '1' && r <= '9' {
			lms := mandel.Landmarks()
			n := int(r - '1')
			if n >= len(lms) {
				return ActionNone
			}
			vw.view = vw.view.CenteredOn(lms[n].Region)
			vw.message = lms[n].Name
			return ActionRedraw
		}
		return ActionNone
	}
	return ActionRedraw
}

// Draw renders the current viewport and blits it to the screen.
func (vw *Viewer) Draw() error {
	start := time.Now()
	fb, err := vw.renderer.Render(vw.view)
	if err != nil {
		return err
	}
	vw.lastRender = time.Since(start)

	vw.screen.Clear()
	for y := 0; y+1 < fb.Height(); y += 2 {
		for x := 0; x < fb.Width(); x++ {
			top, bottom := fb.At(x, y), fb.At(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			vw.screen.SetContent(x, y/2, upperHalf, nil, style)
		}
	}
	if vw.ShowStatus {
		vw.drawStatus(fb.Height() / 2)
	}
	vw.screen.Show()
	return nil
}

// StatusLine describes the current view.
func (vw *Viewer) StatusLine() string {
	s := fmt.Sprintf("zoom %.4g  x %.6g  y %.6g  cap %d  %s",
		vw.view.Zoom, vw.view.OffsetX, vw.view.OffsetY, vw.view.Cap,
		vw.lastRender.Round(time.Millisecond))
	if vw.message != "" {
		s += "  " + vw.message
	}
	return s
}

func (vw *Viewer) drawStatus(row int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	cols, _ := vw.screen.Size()
	line := []rune(vw.StatusLine())
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		vw.screen.SetContent(x, row, r, nil, style)
	}
}

// Snapshot renders the current view and writes it to SnapshotPath.
func (vw *Viewer) Snapshot() error {
	fb, err := vw.renderer.Render(vw.view)
	if err != nil {
		return err
	}
	if err := ppm.WriteFile(vw.SnapshotPath, fb.Image()); err != nil {
		return errors.Wrap(err, "snapshot")
	}
	log.Printf("snapshot saved to %q", vw.SnapshotPath)
	vw.message = "saved " + vw.SnapshotPath
	return nil
}

// Run draws the first frame and processes events until the user quits.
func (vw *Viewer) Run() error {
	if err := vw.Draw(); err != nil {
		return err
	}
	for {
		ev := vw.screen.PollEvent()
		if ev == nil {
			return nil
		}

		action := ActionNone
		switch ev := ev.(type) {
		case *tcell.EventKey:
			action = vw.HandleKey(ev)
		case *tcell.EventResize:
			vw.Resize(ev.Size())
			vw.screen.Sync()
			action = ActionRedraw
		}

		switch action {
		case ActionQuit:
			return nil
		case ActionSnapshot:
			if err := vw.Snapshot(); err != nil {
				// export failures are shown, the view keeps running
				log.Printf("snapshot: %+v", err)
				vw.message = "snapshot failed: " + errors.Cause(err).Error()
			}
			action = ActionRedraw
		}
		if action == ActionRedraw {
			if err := vw.Draw(); err != nil {
				log.Printf("render %+v: %v", vw.view, err)
				vw.view = vw.home.Resize(vw.view.Width, vw.view.Height)
				vw.message = "view reset"
				if err := vw.Draw(); err != nil {
					return err
				}
			}
		}
	}
}
