// mandelexport renders a single Mandelbrot frame and writes it to a PPM or PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/ppm"
)

// main is the entry point for the exporter.
func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mandelexport", flag.ContinueOnError)
	var (
		width    = fs.Int("w", 1280, "image width in pixels")
		height   = fs.Int("h", 720, "image height in pixels")
		zoom     = fs.Float64("zoom", mandel.DefaultZoom, "plane units per pixel")
		x        = fs.Float64("x", 0, "real coordinate of the image centre")
		y        = fs.Float64("y", 0, "imaginary coordinate of the image centre")
		maxIter  = fs.Int("cap", mandel.DefaultCap, "iteration cap")
		cols     = fs.Int("cols", 2, "tile grid columns")
		rows     = fs.Int("rows", 2, "tile grid rows")
		tile     = fs.Int("tile", 0, "fixed tile edge in pixels (0 = use the -cols x -rows grid)")
		workers  = fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		scheme   = fs.String("scheme", "banded", "palette: banded, ramp or gradient")
		landmark = fs.String("landmark", "", "frame a named region instead of -x/-y/-zoom")
		out      = fs.String("o", "mandel.ppm", "output file (.ppm or .png)")
		verbose  = fs.Bool("v", false, "log every finished tile")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := mandel.Viewport{
		Width:   *width,
		Height:  *height,
		Zoom:    *zoom,
		OffsetX: *x,
		OffsetY: *y,
		Cap:     *maxIter,
	}
	if *landmark != "" {
		r, ok := mandel.LookupLandmark(*landmark)
		if !ok {
			return fmt.Errorf("unknown landmark %q", *landmark)
		}
		view = view.CenteredOn(r)
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
	if *verbose {
		opts = append(opts, mandel.WithOnTileRender(func(tile image.Rectangle) {
			log.Printf("rendered tile: %s", tile)
		}))
	}
	renderer := mandel.NewRenderer(mandel.NewScheduler(opts...), s)

	log.Printf("rendering %dx%d zoom %g at (%g, %g) cap %d", view.Width, view.Height, view.Zoom, view.OffsetX, view.OffsetY, view.Cap)
	fb, err := renderer.Render(view)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	stats := renderer.LastStats()
	log.Printf("%d tiles on %d workers in %s", stats.Tiles, stats.Workers, stats.Elapsed)

	if err := ppm.WriteFile(*out, fb.Image()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Printf("fully rendered file saved to %q", *out)
	return nil
}
