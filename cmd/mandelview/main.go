// mandelview is an interactive terminal Mandelbrot viewer.
//
// Controls:
//
//	arrows        pan
//	i / +         zoom in
//	k / -         zoom out
//	] / [         double / halve the iteration cap
//	1-7           jump to a landmark
//	c             cycle palette scheme
//	r             reset view
//	s             toggle status line
//	p             save snapshot
//	q, Esc        quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/term"
)

func main() {
	if err := run(); err != nil {
		// the screen is gone by now
		log.SetOutput(os.Stderr)
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		zoom    = flag.Float64("zoom", 0.04, "plane units per pixel")
		x       = flag.Float64("x", -0.5, "real coordinate of the view centre")
		y       = flag.Float64("y", 0, "imaginary coordinate of the view centre")
		maxIter = flag.Int("cap", mandel.DefaultCap, "iteration cap")
		cols    = flag.Int("cols", 2, "tile grid columns")
		rows    = flag.Int("rows", 2, "tile grid rows")
		tile    = flag.Int("tile", 0, "fixed tile edge in pixels (0 = use the -cols x -rows grid)")
		workers = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		scheme  = flag.String("scheme", "banded", "palette: banded, ramp or gradient")
		out     = flag.String("out", "mandel.ppm", "snapshot file (.ppm or .png)")
		logPath = flag.String("log", "", "log file (the terminal is taken by the viewer)")
	)
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	s, err := mandel.ParseScheme(*scheme)
	if err != nil {
		return err
	}
	opts := []mandel.Option{mandel.WithGrid(*cols, *rows)}
	if *tile > 0 {
		opts = append(opts, mandel.WithTileSize(*tile, *tile))
	}
	if *workers > 0 {
		opts = append(opts, mandel.WithWorkers(*workers))
	}
	renderer := mandel.NewRenderer(mandel.NewScheduler(opts...), s)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell.NewScreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen.Init: %w", err)
	}
	defer screen.Fini()

	start := mandel.Viewport{
		Zoom:    *zoom,
		OffsetX: *x,
		OffsetY: *y,
		Cap:     *maxIter,
	}
	viewer := term.NewViewer(screen, renderer, start)
	viewer.SnapshotPath = *out

	log.Printf("viewer started %+v", viewer.Viewport())
	return viewer.Run()
}
