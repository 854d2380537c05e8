// Package web serves an interactive Mandelbrot view to browsers over a
// websocket. Each connection gets its own viewport; the browser sends JSON
// commands and receives a JSON FrameInfo followed by a binary PNG frame.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/pkg/errors"

	mandel "github.com/marben/mandelview"
)

//go:embed static
var static embed.FS

// Config is shared by all sessions.
type Config struct {
	// Scheduler computes frames for every session. Nil uses the default.
	Scheduler *mandel.Scheduler
	// Scheme is the initial palette scheme.
	Scheme mandel.Scheme
	// Start is the viewport a new session begins with.
	Start mandel.Viewport
	// MaxPixels bounds the frame size a browser may ask for. Zero means no limit.
	MaxPixels int
	// MaxCap bounds the iteration cap a browser may ask for. Zero leaves only
	// mandel.MaxCap.
	MaxCap int
	// OriginPatterns are passed to websocket.Accept.
	OriginPatterns []string
}

// DefaultConfig renders 800×600 frames with the default scheduler.
func DefaultConfig() Config {
	return Config{
		Scheduler: mandel.NewScheduler(),
		Start:     mandel.DefaultViewport(800, 600),
		MaxPixels: 4096 * 4096,
		MaxCap:    1 << 16,
	}
}

// NewHandler serves the embedded page at / and sessions at /ws.
func NewHandler(cfg Config) http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg))
	mux.Handle("/", http.FileServer(http.FS(sub)))
	return mux
}

// NewServer wraps NewHandler in an http.Server listening on port.
func NewServer(port int, cfg Config) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHandler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on http://localhost:%d", port)
	return srv
}

// websocketHandler handles the http ws endpoint
// each accepted connection is served by its own Session until it closes
func websocketHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: cfg.OriginPatterns,
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		s := newSession(c, cfg)
		if err := s.Serve(r.Context()); err != nil && !isClosed(err) {
			log.Printf("session %s: %+v", r.RemoteAddr, err)
			c.Close(websocket.StatusInternalError, "session failed")
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
		log.Printf("connection closed: %s", r.RemoteAddr)
	}
}

func isClosed(err error) bool {
	return websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled)
}
