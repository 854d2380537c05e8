package ppm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 50), uint8(y * 100), uint8(255 - x*y*10), 255})
		}
	}
	return img
}

func TestEncodeHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "P3\n5 3\n255\n") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3+3 {
		t.Fatalf("Expected 6 lines, got %d", len(lines))
	}
	if got := len(strings.Fields(lines[3])); got != 5*3 {
		t.Errorf("row has %d samples, want 15", got)
	}
	if lines[3][:9] != "0 0 255 5" {
		t.Errorf("first row starts %q", lines[3][:9])
	}
}

func TestEncodeDropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "P3\n1 1\n255\n10 20 30\n"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	src := testImage()
	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("pixels changed in the round trip")
	}
}

func TestDecodeCommentsAndScaling(t *testing.T) {
	in := "P3 # plain pixmap\n# made by hand\n2 1\n15\n15 0 7\t0 15 15\n"
	img, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := img.RGBAAt(0, 0), (color.RGBA{255, 0, 119, 255}); got != want {
		t.Errorf("pixel 0 = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(1, 0), (color.RGBA{0, 255, 255, 255}); got != want {
		t.Errorf("pixel 1 = %v, want %v", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"binary magic":   "P6\n1 1\n255\n\x00\x00\x00",
		"empty":          "",
		"truncated":      "P3\n2 1\n255\n1 2 3 4",
		"sample too big": "P3\n1 1\n255\n1 256 3\n",
		"negative":       "P3\n1 1\n255\n1 -2 3\n",
		"bad width":      "P3\nwide 1\n255\n",
		"zero height":    "P3\n1 0\n255\n",
		"huge size":      "P3\n4294967296 4294967296\n255\n0 0 0\n",
		"over limit":     "P3\n30000 30000\n255\n0 0 0\n",
		"wrapping size":  "P3\n9223372036854775807 2\n255\n0 0 0\n",
		"bad max value":  "P3\n1 1\n0\n0 0 0\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("Decode error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"out.ppm", FormatPPM, true},
		{"OUT.PNM", FormatPPM, true},
		{"dir/frame.png", FormatPNG, true},
		{"frame.jpg", 0, false},
		{"frame", 0, false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("FormatFromPath(%q) error = %v", tt.path, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	ppmPath := filepath.Join(dir, "frame.ppm")
	if err := WriteFile(ppmPath, src); err != nil {
		t.Fatalf("WriteFile(ppm): %v", err)
	}
	f, err := os.Open(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Pix, src.Pix) {
		t.Error("ppm file differs from the source image")
	}

	pngPath := filepath.Join(dir, "frame.png")
	if err := WriteFile(pngPath, src); err != nil {
		t.Fatalf("WriteFile(png): %v", err)
	}
	pf, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	decoded, err := png.Decode(pf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Errorf("png bounds = %v", decoded.Bounds())
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()

	gif := filepath.Join(dir, "frame.gif")
	if err := WriteFile(gif, testImage()); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := os.Stat(gif); !os.IsNotExist(err) {
		t.Errorf("file created for unsupported extension: %v", err)
	}

	if err := WriteFile(filepath.Join(dir, "missing", "frame.ppm"), testImage()); err == nil {
		t.Error("expected error for missing directory")
	}
}
