package ppm

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is an export file format.
type Format int

const (
	FormatPPM Format = iota
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatPPM:
		return "ppm"
	case FormatPNG:
		return "png"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm", ".pnm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	}
	return 0, errors.Errorf("unsupported export extension %q", filepath.Ext(path))
}

// Write encodes img to w in format f.
func Write(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPPM:
		return Encode(w, img)
	case FormatPNG:
		return errors.Wrap(png.Encode(w, img), "png: encode")
	}
	return errors.Errorf("unsupported export format %d", int(f))
}

// WriteFile creates path and writes img to it, picking the format from the
// extension. A partially written file is removed on failure.
func WriteFile(path string, img image.Image) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close export file")
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(out, img, f)
}
