package mandel

import (
	"image"
)

// SplitGrid splits r into cols × rows tiles. Remainders are spread over the
// leading columns and rows so tile sizes differ by at most one pixel. cols and
// rows are clamped to [1, r.Dx()] and [1, r.Dy()], so no tile is empty.
func SplitGrid(r image.Rectangle, cols, rows int) []image.Rectangle {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	cols = clampInt(cols, 1, w)
	rows = clampInt(rows, 1, h)

	tiles := make([]image.Rectangle, 0, cols*rows)
	y0 := r.Min.Y
	for j := 0; j < rows; j++ {
		th := h / rows
		if j < h%rows {
			th++
		}
		x0 := r.Min.X
		for i := 0; i < cols; i++ {
			tw := w / cols
			if i < w%cols {
				tw++
			}
			tiles = append(tiles, image.Rect(x0, y0, x0+tw, y0+th))
			x0 += tw
		}
		y0 += th
	}
	return tiles
}

// SplitRect cuts r into tileW × tileH tiles in row-major order, trimming the
// last column and row to r. It returns nil when either size is not positive.
func SplitRect(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 || r.Empty() {
		return nil
	}
	cols := (r.Dx() + tileW - 1) / tileW
	rows := (r.Dy() + tileH - 1) / tileH

	tiles := make([]image.Rectangle, 0, cols*rows)
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tile := image.Rect(x, y, x+tileW, y+tileH).Intersect(r)
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
