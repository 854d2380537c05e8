// mandelserver serves an interactive Mandelbrot view to browsers over a websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mandel "github.com/marben/mandelview"
	"github.com/marben/mandelview/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		port    = flag.Int("port", 8080, "http port")
		width   = flag.Int("w", 800, "initial frame width")
		height  = flag.Int("h", 600, "initial frame height")
		maxIter = flag.Int("cap", mandel.DefaultCap, "initial iteration cap")
		maxCap  = flag.Int("maxcap", 1<<16, "largest iteration cap a browser may request")
		cols    = flag.Int("cols", 4, "tile grid columns")
		rows    = flag.Int("rows", 4, "tile grid rows")
		tile    = flag.Int("tile", 0, "fixed tile edge in pixels (0 = use the -cols x -rows grid)")
		workers = flag.Int("workers", 0, "worker goroutines per frame (0 = GOMAXPROCS)")
		scheme  = flag.String("scheme", "banded", "initial palette: banded, ramp or gradient")
		origins = flag.String("origins", "", "comma separated websocket origin patterns")
	)
	flag.Parse()

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

	cfg := web.DefaultConfig()
	cfg.Scheduler = mandel.NewScheduler(opts...)
	cfg.Scheme = s
	cfg.MaxCap = *maxCap
	cfg.Start = mandel.DefaultViewport(*width, *height).WithCap(*maxIter)
	if *origins != "" {
		cfg.OriginPatterns = strings.Split(*origins, ",")
	}
	if err := cfg.Start.Validate(); err != nil {
		return fmt.Errorf("initial viewport: %w", err)
	}

	srv := web.NewServer(*port, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
