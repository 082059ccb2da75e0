package thumbnail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// HDRImage is a decoded Radiance picture in linear RGB
type HDRImage struct {
	Width, Height int
	Pix           []float32 // RGB triples, row-major, top row first
}

// At returns the linear color of a pixel
func (h *HDRImage) At(x, y int) (r, g, b float32) {
	i := (y*h.Width + x) * 3
	return h.Pix[i], h.Pix[i+1], h.Pix[i+2]
}

var errBadHDR = errors.New("malformed radiance file")

// DecodeHDR reads a Radiance RGBE (.hdr) picture.
// Flat and new-style run-length scanlines are supported, in -Y +X orientation.
func DecodeHDR(r io.Reader) (*HDRImage, error) {
	br := bufio.NewReader(r)

	magic, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, fmt.Errorf("%w: missing #? signature", errBadHDR)
	}

	// Header variables end at the first blank line
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "FORMAT="); ok && v != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("%w: unsupported format %s", errBadHDR, v)
		}
	}

	res, err := readLine(br)
	if err != nil {
		return nil, err
	}
	var width, height int
	if _, err := fmt.Sscanf(res, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("%w: unsupported resolution line %q", errBadHDR, res)
	}
	if width <= 0 || height <= 0 || width > 1<<15 || height > 1<<15 {
		return nil, fmt.Errorf("%w: bad size %dx%d", errBadHDR, width, height)
	}

	img := &HDRImage{Width: width, Height: height, Pix: make([]float32, width*height*3)}
	scan := make([]byte, width*4)

	for y := 0; y < height; y++ {
		if err := readScanline(br, scan, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := img.Pix[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			row[x*3], row[x*3+1], row[x*3+2] = rgbeToFloat(scan[x*4], scan[x*4+1], scan[x*4+2], scan[x*4+3])
		}
	}

	return img, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("%w: truncated header: %v", errBadHDR, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readScanline fills scan with width RGBE quadruples
func readScanline(br *bufio.Reader, scan []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return err
	}

	rle := width >= 8 && width < 0x8000 && head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0
	if !rle {
		copy(scan, head[:])
		_, err := io.ReadFull(br, scan[4:])
		return err
	}
	if int(head[2])<<8|int(head[3]) != width {
		return fmt.Errorf("%w: scanline width mismatch", errBadHDR)
	}

	// Channels are stored one after another, each run-length encoded
	channel := make([]byte, width)
	for c := 0; c < 4; c++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count - 128)
				if x+n > width {
					return fmt.Errorf("%w: run overflows scanline", errBadHDR)
				}
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < n; i++ {
					channel[x+i] = v
				}
				x += n
			} else {
				n := int(count)
				if n == 0 || x+n > width {
					return fmt.Errorf("%w: bad literal run", errBadHDR)
				}
				if _, err := io.ReadFull(br, channel[x:x+n]); err != nil {
					return err
				}
				x += n
			}
		}
		for x := 0; x < width; x++ {
			scan[x*4+c] = channel[x]
		}
	}
	return nil
}

func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := float32(math.Ldexp(1, int(e)-(128+8)))
	return float32(r) * f, float32(g) * f, float32(b) * f
}

// EncodeHDR writes img as a flat RGBE picture. Used to build fixtures.
func EncodeHDR(w io.Writer, img *HDRImage) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", img.Height, img.Width)

	for i := 0; i < img.Width*img.Height; i++ {
		q := floatToRGBE(img.Pix[i*3], img.Pix[i*3+1], img.Pix[i*3+2])
		buf.Write(q[:])
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func floatToRGBE(r, g, b float32) [4]byte {
	v := max(r, g, b)
	if v < 1e-32 {
		return [4]byte{}
	}
	frac, exp := math.Frexp(float64(v))
	scale := frac * 256 / float64(v)
	return [4]byte{
		byte(float64(r) * scale),
		byte(float64(g) * scale),
		byte(float64(b) * scale),
		byte(exp + 128),
	}
}
