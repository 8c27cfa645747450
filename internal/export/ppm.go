package export

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"

	"trirast/internal/raster"
)

// Header limits checked before the pixel buffer is allocated.
const (
	maxPPMSide   = 1 << 15
	maxPPMPixels = 1 << 26
)

// WritePPM writes fs as a binary (P6) PPM: Width*Height RGB triples,
// row 0 first.
func WritePPM(w io.Writer, fs *raster.FrameStore) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fs.Width, fs.Height); err != nil {
		return fmt.Errorf("export: ppm header: %w", err)
	}
	if _, err := bw.Write(fs.RGB()); err != nil {
		return fmt.Errorf("export: ppm pixels: %w", err)
	}
	return bw.Flush()
}

// ReadPPM decodes a binary PPM with maxval 255 into an opaque NRGBA image.
func ReadPPM(r io.Reader) (*image.NRGBA, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, fmt.Errorf("export: ppm: unsupported magic %q", magic)
	}
	var dims [3]int
	for i := range dims {
		tok, err := ppmToken(br)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("export: ppm: bad header field %q", tok)
		}
		dims[i] = n
	}
	w, h, maxval := dims[0], dims[1], dims[2]
	if maxval != 255 {
		return nil, fmt.Errorf("export: ppm: maxval %d not supported", maxval)
	}
	if w > maxPPMSide || h > maxPPMSide || w*h > maxPPMPixels {
		return nil, fmt.Errorf("export: ppm: dimensions %dx%d too large", w, h)
	}

	pix := make([]byte, w*h*3)
	if _, err := io.ReadFull(br, pix); err != nil {
		return nil, fmt.Errorf("export: ppm pixels: %w", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		copy(img.Pix[i*4:i*4+3], pix[i*3:i*3+3])
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

// ppmToken reads one whitespace-delimited header token, skipping # comments,
// and consumes the single whitespace byte that ends it.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("export: ppm header: %w", err)
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("export: ppm header: %w", err)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}
