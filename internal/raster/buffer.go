package raster

import (
	"image"
	"math"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{255, 255, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// FrameStore owns the depth buffer and color framebuffer of one render pass.
// Both are row-major with index y*Width + x; row 0 is the first row handed
// to a presenter. Both slices must hold exactly Width*Height cells; Render
// rejects a store that does not, and a bare Rasterizer assumes it.
type FrameStore struct {
	Width  int
	Height int
	Depth  []float64 // +Inf means nothing drawn yet
	Color  []Color
}

// NewFrameStore allocates a w×h store and clears it.
func NewFrameStore(w, h int) *FrameStore {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fs := &FrameStore{
		Width:  w,
		Height: h,
		Depth:  make([]float64, w*h),
		Color:  make([]Color, w*h),
	}
	fs.Clear()
	return fs
}

// Clear resets every depth cell to +Inf and every color cell to black.
func (fs *FrameStore) Clear() {
	n := len(fs.Depth)
	if n == 0 {
		return
	}
	fs.Depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(fs.Depth[i:], fs.Depth[:i])
	}
	clear(fs.Color)
}

// consistent reports whether both grids match Width×Height.
func (fs *FrameStore) consistent() bool {
	n := fs.Width * fs.Height
	return fs.Width >= 0 && fs.Height >= 0 && len(fs.Depth) == n && len(fs.Color) == n
}

func (fs *FrameStore) inBounds(x, y int) bool {
	return x >= 0 && x < fs.Width && y >= 0 && y < fs.Height
}

// At returns the color at (x, y), or black outside the grid.
func (fs *FrameStore) At(x, y int) Color {
	if !fs.inBounds(x, y) {
		return Black
	}
	return fs.Color[y*fs.Width+x]
}

// DepthAt returns the stored depth at (x, y), or +Inf outside the grid.
func (fs *FrameStore) DepthAt(x, y int) float64 {
	if !fs.inBounds(x, y) {
		return math.Inf(1)
	}
	return fs.Depth[y*fs.Width+x]
}

// RGB returns the framebuffer as Width*Height packed RGB triples, row 0 first.
func (fs *FrameStore) RGB() []byte {
	out := make([]byte, len(fs.Color)*3)
	for i, c := range fs.Color {
		out[i*3] = c.R
		out[i*3+1] = c.G
		out[i*3+2] = c.B
	}
	return out
}

// Image copies the framebuffer into an opaque NRGBA image. Row 0 becomes the
// top row of the image.
func (fs *FrameStore) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fs.Width, fs.Height))
	for i, c := range fs.Color {
		p := i * 4
		img.Pix[p] = c.R
		img.Pix[p+1] = c.G
		img.Pix[p+2] = c.B
		img.Pix[p+3] = 255
	}
	return img
}

// Covered reports how many pixels hold a depth other than +Inf.
func (fs *FrameStore) Covered() int {
	n := 0
	for _, z := range fs.Depth {
		if !math.IsInf(z, 1) {
			n++
		}
	}
	return n
}
