// Package ppm reads and writes the plain-text (P3) portable pixmap format.
//
// The encoder writes one line per image row so the output stays readable and
// diffable:
//
//	P3
//	2 1
//	255
//	255 0 0 0 0 255
package ppm

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

const magic = "P3"

// MaxValue is the channel maximum written by Encode.
const MaxValue = 255

// MaxPixels bounds the image size Decode accepts. The header is checked
// before the image is allocated.
const MaxPixels = 1 << 26

// ErrFormat is wrapped by every decode error caused by malformed input.
var ErrFormat = errors.New("ppm: invalid format")

// Encode writes img as a plain pixmap. Alpha is dropped.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	// bufio.Writer keeps the first error, checked at Flush
	bw.WriteString(magic + "\n")
	bw.WriteString(strconv.Itoa(b.Dx()) + " " + strconv.Itoa(b.Dy()) + "\n")
	bw.WriteString(strconv.Itoa(MaxValue) + "\n")

	line := make([]byte, 0, b.Dx()*12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line = line[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if x > b.Min.X {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
		}
		line = append(line, '\n')
		bw.Write(line)
	}

	return errors.Wrap(bw.Flush(), "ppm: write")
}

// Decode parses a plain pixmap. Samples are rescaled to 8 bits when the
// header's maximum value is not 255; alpha is always opaque.
func Decode(r io.Reader) (*image.RGBA, error) {
	s := &scanner{r: bufio.NewReader(r)}

	tok, err := s.token()
	if err != nil {
		return nil, err
	}
	if tok != magic {
		return nil, errors.Wrapf(ErrFormat, "magic %q", tok)
	}

	w, err := s.int("width")
	if err != nil {
		return nil, err
	}
	h, err := s.int("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := s.int("max value")
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 || w > MaxPixels/h {
		return nil, errors.Wrapf(ErrFormat, "size %dx%d", w, h)
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, errors.Wrapf(ErrFormat, "max value %d", maxVal)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var rgb [3]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for i := range rgb {
				v, err := s.int("sample")
				if err != nil {
					return nil, errors.Wrapf(err, "pixel (%d,%d)", x, y)
				}
				if v < 0 || v > maxVal {
					return nil, errors.Wrapf(ErrFormat, "sample %d out of range at (%d,%d)", v, x, y)
				}
				rgb[i] = v
			}
			img.SetRGBA(x, y, color.RGBA{
				R: scale(rgb[0], maxVal),
				G: scale(rgb[1], maxVal),
				B: scale(rgb[2], maxVal),
				A: 255,
			})
		}
	}
	return img, nil
}

func scale(v, maxVal int) uint8 {
	if maxVal == MaxValue {
		return uint8(v)
	}
	return uint8((v*MaxValue + maxVal/2) / maxVal)
}

// scanner splits the header and body into whitespace separated tokens and
// skips '#' comments.
type scanner struct {
	r *bufio.Reader
}

func (s *scanner) token() (string, error) {
	var tok []byte
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			if len(tok) > 0 {
				return string(tok), nil
			}
			return "", errors.Wrap(ErrFormat, "unexpected end of input")
		}
		if err != nil {
			return "", errors.Wrap(err, "ppm: read")
		}
		switch {
		case c == '#':
			if _, err := s.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", errors.Wrap(err, "ppm: read")
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (s *scanner) int(what string) (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, errors.Wrap(err, what)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "%s %q", what, tok)
	}
	return n, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
