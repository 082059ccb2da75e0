// Package thumbnail renders JPEG previews for pool assets.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"
)

// Quality is the JPEG quality of written thumbnails
const Quality = 90

// Generator implements ports.ThumbnailGenerator
type Generator struct {
	log zerolog.Logger
}

// Ensure Generator implements ThumbnailGenerator
var _ ports.ThumbnailGenerator = (*Generator)(nil)

// New creates a thumbnail generator
func New(log zerolog.Logger) *Generator {
	return &Generator{log: logging.Component(log, "thumbnail")}
}

// Generate writes a JPEG preview of src to dst.
// An existing dst, or a src that is not a regular file, is left alone.
// Radiance pictures become size x size/2 tonemapped panoramas;
// other images are fitted within size x size.
func (g *Generator) Generate(src, dst string, size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: thumbnail size must be positive, got %d", domain.ErrInvalidArgument, size)
	}
	if _, err := os.Stat(dst); err == nil {
		g.log.Debug().Str("path", dst).Msg("thumbnail exists, skipping")
		return nil
	}
	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		g.log.Debug().Str("path", src).Msg("source is not a file, skipping")
		return nil
	}

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(src)); ext {
	case ".hdr":
		img, err = g.hdrPreview(src, size, size/2)
	case ".exr":
		return domain.NewPathError("generate thumbnail", src, domain.ErrNotSupported, errors.New("OpenEXR decoding unavailable"))
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		img, err = g.imagePreview(src, size)
	default:
		return domain.NewPathError("generate thumbnail", src, domain.ErrNotSupported, fmt.Errorf("no decoder for %s", ext))
	}
	if err != nil {
		g.log.Error().Err(err).Str("path", src).Msg("can't decode source")
		return domain.NewPathError("generate thumbnail", src, domain.ErrIOFailure, err)
	}

	if err := writeJPEG(dst, img); err != nil {
		g.log.Error().Err(err).Str("path", dst).Msg("can't write thumbnail")
		return domain.NewPathError("write thumbnail", dst, domain.ErrIOFailure, err)
	}

	g.log.Info().Str("src", src).Str("dst", dst).Msg("generated thumbnail")
	return nil
}

func (g *Generator) hdrPreview(src string, width, height int) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdr, err := DecodeHDR(f)
	if err != nil {
		return nil, err
	}
	if height < 1 {
		height = 1
	}
	return Tonemap(Resample(hdr, width, height)), nil
}

func (g *Generator) imagePreview(src string, size int) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return resize.Thumbnail(uint(size), uint(size), img, resize.Lanczos3), nil
}

// Resample scales a linear picture with bilinear filtering on pixel centers
func Resample(src *HDRImage, width, height int) *HDRImage {
	dst := &HDRImage{Width: width, Height: height, Pix: make([]float32, width*height*3)}
	sx := float64(src.Width) / float64(width)
	sy := float64(src.Height) / float64(height)

	for y := 0; y < height; y++ {
		fy := clamp((float64(y)+0.5)*sy-0.5, 0, float64(src.Height-1))
		y0 := int(fy)
		y1 := min(y0+1, src.Height-1)
		wy := float32(fy - float64(y0))

		for x := 0; x < width; x++ {
			fx := clamp((float64(x)+0.5)*sx-0.5, 0, float64(src.Width-1))
			x0 := int(fx)
			x1 := min(x0+1, src.Width-1)
			wx := float32(fx - float64(x0))

			i00 := (y0*src.Width + x0) * 3
			i01 := (y0*src.Width + x1) * 3
			i10 := (y1*src.Width + x0) * 3
			i11 := (y1*src.Width + x1) * 3
			o := (y*width + x) * 3
			for c := 0; c < 3; c++ {
				top := src.Pix[i00+c]*(1-wx) + src.Pix[i01+c]*wx
				bottom := src.Pix[i10+c]*(1-wx) + src.Pix[i11+c]*wx
				dst.Pix[o+c] = top*(1-wy) + bottom*wy
			}
		}
	}
	return dst
}

// White is the Reinhard white point
const White = 1.0

// Tonemap applies the Reinhard operator and a 1/2.2 gamma
func Tonemap(src *HDRImage) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r, g, b := src.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: toneByte(r), G: toneByte(g), B: toneByte(b), A: 255})
		}
	}
	return out
}

func toneByte(c float32) uint8 {
	v := float64(c)
	if v < 0 {
		v = 0
	}
	v = v * (1 + v/(White*White)) / (1 + v)
	v = math.Pow(v, 1/2.2)
	return uint8(clamp(v*255, 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// writeJPEG encodes next to dst and renames into place
func writeJPEG(dst string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".thumb-*.jpg")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: Quality}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
