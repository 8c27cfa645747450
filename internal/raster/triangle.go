package raster

import (
	"math"

	"trirast/internal/geometry"
)

// Barycentric returns the weights of p relative to triangle abc in the XY
// plane, using the signed-area denominator
//
//	den = (b.y-c.y)(a.x-c.x) + (c.x-b.x)(a.y-c.y)
//
// A zero den is not special-cased: the weights come out non-finite and
// Covered rejects them.
func Barycentric(a, b, c, p geometry.Vec3) (alpha, beta, gamma float64) {
	den := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	alpha = ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / den
	beta = ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / den
	gamma = 1 - alpha - beta
	return alpha, beta, gamma
}

// Covered is the inclusive containment test. Samples exactly on an edge are
// covered by both triangles sharing it. NaN weights never pass.
func Covered(alpha, beta, gamma float64) bool {
	return alpha >= 0 && beta >= 0 && gamma >= 0
}

// Stats counts what one pass did.
type Stats struct {
	Triangles     int
	Degenerate    int // zero or NaN barycentric denominator
	Offscreen     int // bounding box misses the grid or is not finite
	Fragments     int // covered samples
	DepthRejected int
	Written       int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Degenerate += o.Degenerate
	s.Offscreen += o.Offscreen
	s.Fragments += o.Fragments
	s.DepthRejected += o.DepthRejected
	s.Written += o.Written
}

// Rasterizer draws screen-space triangles into a FrameStore.
type Rasterizer struct {
	fs    *FrameStore
	shade Shader
	Stats Stats
}

// NewRasterizer targets fs. A nil shader means Flat(White).
func NewRasterizer(fs *FrameStore, shade Shader) *Rasterizer {
	if shade == nil {
		shade = Flat(White)
	}
	return &Rasterizer{fs: fs, shade: shade}
}

// Draw rasterizes tris in order.
func (r *Rasterizer) Draw(tris []geometry.Triangle) {
	for i, tri := range tris {
		r.DrawTriangle(i, tri)
	}
}

// DrawTriangle rasterizes one screen-space triangle. idx is passed through to
// the shader. Pixel (x, y) is sampled at its center (x+0.5, y+0.5); a
// covered sample is written only when its interpolated depth is strictly
// less than the stored one, and depth and color are written together.
func (r *Rasterizer) DrawTriangle(idx int, tri geometry.Triangle) {
	r.Stats.Triangles++
	fs := r.fs
	a, b, c := tri.V[0], tri.V[1], tri.V[2]

	xmin := math.Floor(min(a.X, b.X, c.X))
	xmax := math.Ceil(max(a.X, b.X, c.X))
	ymin := math.Floor(min(a.Y, b.Y, c.Y))
	ymax := math.Ceil(max(a.Y, b.Y, c.Y))
	if !finiteAll(xmin, xmax, ymin, ymax) {
		r.Stats.Offscreen++
		return
	}

	// Clamp in float space so far-off coordinates never overflow int.
	xmin = max(xmin, 0)
	ymin = max(ymin, 0)
	xmax = min(xmax, float64(fs.Width-1))
	ymax = min(ymax, float64(fs.Height-1))
	if xmin > xmax || ymin > ymax {
		r.Stats.Offscreen++
		return
	}

	den := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if den == 0 || math.IsNaN(den) {
		// Same outcome as letting the NaN/Inf weights fail Covered.
		r.Stats.Degenerate++
		return
	}

	dy12 := b.Y - c.Y
	dx21 := c.X - b.X
	dy20 := c.Y - a.Y
	dx02 := a.X - c.X

	x0, x1 := int(xmin), int(xmax)
	y0, y1 := int(ymin), int(ymax)
	for y := y0; y <= y1; y++ {
		dpy := float64(y) + 0.5 - c.Y
		row := y * fs.Width
		for x := x0; x <= x1; x++ {
			dpx := float64(x) + 0.5 - c.X
			alpha := (dy12*dpx + dx21*dpy) / den
			beta := (dy20*dpx + dx02*dpy) / den
			gamma := 1 - alpha - beta
			if !Covered(alpha, beta, gamma) {
				continue
			}
			r.Stats.Fragments++

			z := alpha*a.Z + beta*b.Z + gamma*c.Z
			i := row + x
			if !(z < fs.Depth[i]) {
				r.Stats.DepthRejected++
				continue
			}
			fs.Depth[i] = z
			fs.Color[i] = r.shade(Fragment{
				X: x, Y: y,
				Alpha: alpha, Beta: beta, Gamma: gamma,
				Z:        z,
				Index:    idx,
				Triangle: tri,
			})
			r.Stats.Written++
		}
	}
}

func finiteAll(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
