// Package export hands a finished frame to the outside world: packed PPM for
// deterministic comparison, and the common image formats for viewing.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"trirast/internal/raster"
)

// ErrUnknownFormat is returned for file extensions with no encoder.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format names an output encoding.
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	WebP Format = "webp"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	TGA  Format = "tga"
)

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return PPM, nil
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".tga":
		return TGA, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Options adjust the image before encoding. The zero value writes the frame
// as stored: row 0 on top, one pixel per cell.
type Options struct {
	FlipY bool // put row 0 at the bottom, as bottom-up presenters expect
	Scale int  // integer nearest-neighbour upscale; <= 1 means none
}

// Encode writes fs to w in format f.
func Encode(w io.Writer, fs *raster.FrameStore, f Format, o Options) error {
	if f == PPM && !o.FlipY && o.Scale <= 1 {
		return WritePPM(w, fs)
	}
	img := Prepare(fs, o)

	var err error
	switch f {
	case PPM:
		err = WritePPM(w, FromImage(img))
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case TGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("export: %s encode: %w", f, err)
	}
	return nil
}

// Save encodes fs into path, choosing the format by extension and creating
// parent directories as needed.
func Save(path string, fs *raster.FrameStore, o Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := Encode(out, fs, f, o); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// Prepare converts fs to an image with o applied.
func Prepare(fs *raster.FrameStore, o Options) *image.NRGBA {
	img := fs.Image()
	if o.FlipY {
		img = flipY(img)
	}
	if o.Scale > 1 {
		b := img.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*o.Scale, b.Dy()*o.Scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}
	return img
}

func flipY(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	h := b.Dy()
	for y := 0; y < h; y++ {
		copy(dst.Pix[(h-1-y)*dst.Stride:(h-y)*dst.Stride], src.Pix[y*src.Stride:(y+1)*src.Stride])
	}
	return dst
}

// FromImage copies img into a frame store's color grid. Depth is left
// cleared, alpha is dropped.
func FromImage(img image.Image) *raster.FrameStore {
	b := img.Bounds()
	fs := raster.NewFrameStore(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			fs.Color[y*fs.Width+x] = raster.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
		}
	}
	return fs
}
