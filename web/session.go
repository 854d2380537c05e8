package web

import (
	"context"
	"image/png"
	"log"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/pkg/errors"

	mandel "github.com/marben/mandelview"
)

// Command is a viewport change sent by the browser. Op is one of pan (Dir),
// zoom (In), cap (Value), resize (W, H), landmark (Name), scheme (Name) or
// reset.
type Command struct {
	Op    string `json:"op"`
	Dir   string `json:"dir,omitempty"`
	In    bool   `json:"in,omitempty"`
	Value int    `json:"value,omitempty"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Name  string `json:"name,omitempty"`
}

// FrameInfo precedes every binary PNG frame.
type FrameInfo struct {
	Type      string          `json:"type"`
	Viewport  mandel.Viewport `json:"viewport"`
	Scheme    string          `json:"scheme"`
	Tiles     int             `json:"tiles"`
	ElapsedMs float64         `json:"elapsedMs"`
}

// ErrorMessage reports a rejected command. The session keeps its previous view.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

var directions = map[string]mandel.Direction{
	"up":    mandel.Up,
	"down":  mandel.Down,
	"left":  mandel.Left,
	"right": mandel.Right,
}

// Session is one browser connection. It owns its viewport and renderer and
// handles commands strictly one after another, so a pass is never started
// while another is running.
type Session struct {
	conn      *websocket.Conn
	renderer  *mandel.Renderer
	view      mandel.Viewport
	home      mandel.Viewport
	maxPixels int
	maxCap    int
}

func newSession(conn *websocket.Conn, cfg Config) *Session {
	return &Session{
		conn:      conn,
		renderer:  mandel.NewRenderer(cfg.Scheduler, cfg.Scheme),
		view:      cfg.Start,
		home:      cfg.Start,
		maxPixels: cfg.MaxPixels,
		maxCap:    cfg.MaxCap,
	}
}

// Apply returns the viewport after cmd. The session's own view is not touched.
func (s *Session) Apply(cmd Command) (mandel.Viewport, error) {
	v := s.view
	switch cmd.Op {
	case "pan":
		dir, ok := directions[cmd.Dir]
		if !ok {
			return v, errors.Errorf("unknown pan direction %q", cmd.Dir)
		}
		v = v.Pan(dir)
	case "zoom":
		if cmd.In {
			v = v.ZoomIn()
		} else {
			v = v.ZoomOut()
		}
	case "cap":
		if s.maxCap > 0 && cmd.Value > s.maxCap {
			return v, errors.Errorf("cap %d exceeds %d", cmd.Value, s.maxCap)
		}
		v = v.WithCap(cmd.Value)
	case "resize":
		if cmd.W <= 0 || cmd.H <= 0 {
			return v, errors.Errorf("resize %dx%d", cmd.W, cmd.H)
		}
		// divide rather than multiply, W*H can wrap
		if s.maxPixels > 0 && cmd.W > s.maxPixels/cmd.H {
			return v, errors.Errorf("resize %dx%d exceeds %d pixels", cmd.W, cmd.H, s.maxPixels)
		}
		v = v.Resize(cmd.W, cmd.H)
	case "landmark":
		r, ok := mandel.LookupLandmark(cmd.Name)
		if !ok {
			return v, errors.Errorf("unknown landmark %q", cmd.Name)
		}
		v = v.CenteredOn(r)
	case "scheme":
		if _, err := mandel.ParseScheme(cmd.Name); err != nil {
			return v, err
		}
	case "reset":
		v = s.home.Resize(v.Width, v.Height)
	default:
		return v, errors.Errorf("unknown command %q", cmd.Op)
	}
	return v, v.Validate()
}

// Serve sends the initial frame and then answers every command with a new
// frame or an error message until the connection closes.
func (s *Session) Serve(ctx context.Context) error {
	if err := s.sendFrame(ctx); err != nil {
		return err
	}
	for {
		var cmd Command
		if err := wsjson.Read(ctx, s.conn, &cmd); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return errors.Wrap(err, "read command")
		}

		v, err := s.Apply(cmd)
		if err != nil {
			if err := wsjson.Write(ctx, s.conn, ErrorMessage{Type: "error", Error: err.Error()}); err != nil {
				return errors.Wrap(err, "write error message")
			}
			continue
		}
		if cmd.Op == "scheme" {
			scheme, _ := mandel.ParseScheme(cmd.Name)
			s.renderer.SetScheme(scheme)
		}
		s.view = v

		if err := s.sendFrame(ctx); err != nil {
			return err
		}
	}
}

func (s *Session) sendFrame(ctx context.Context) error {
	start := time.Now()
	fb, err := s.renderer.Render(s.view)
	if err != nil {
		return errors.Wrap(err, "render")
	}
	info := FrameInfo{
		Type:      "frame",
		Viewport:  s.view,
		Scheme:    s.renderer.Scheme().String(),
		Tiles:     s.renderer.LastStats().Tiles,
		ElapsedMs: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err := wsjson.Write(ctx, s.conn, info); err != nil {
		return errors.Wrap(err, "write frame info")
	}

	w, err := s.conn.Writer(ctx, websocket.MessageBinary)
	if err != nil {
		return errors.Wrap(err, "frame writer")
	}
	if err := png.Encode(w, fb.Image()); err != nil {
		w.Close()
		return errors.Wrap(err, "encode frame")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "flush frame")
	}
	log.Printf("frame %dx%d zoom %.4g cap %d in %.1fms",
		s.view.Width, s.view.Height, s.view.Zoom, s.view.Cap, info.ElapsedMs)
	return nil
}
