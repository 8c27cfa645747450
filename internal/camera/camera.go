// Package camera maps camera-space triangles into pixel space with a fixed
// perspective divide and viewport transform.
package camera

import (
	"errors"
	"fmt"
	"math"

	"trirast/internal/geometry"
)

// ErrInvalidCamera is returned by Camera.Validate.
var ErrInvalidCamera = errors.New("camera: invalid camera")

// Frustum bounds at the near plane. Far is kept for configuration only; the
// projection never reads it.
type Frustum struct {
	Left   float64 `json:"l"`
	Right  float64 `json:"r"`
	Bottom float64 `json:"b"`
	Top    float64 `json:"t"`
	Near   float64 `json:"n"`
	Far    float64 `json:"f"`
}

// DefaultFrustum is a symmetric 0.2×0.2 window with n = -0.1.
func DefaultFrustum() Frustum {
	return Frustum{
		Left:   -0.1,
		Right:  0.1,
		Bottom: -0.1,
		Top:    0.1,
		Near:   -0.1,
		Far:    -1000,
	}
}

// Viewport is the output resolution in pixels (nx, ny).
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Camera is a frustum paired with the viewport it maps onto.
type Camera struct {
	Frustum  Frustum
	Viewport Viewport
}

// New returns a camera for an nx×ny viewport.
func New(f Frustum, nx, ny int) Camera {
	return Camera{Frustum: f, Viewport: Viewport{Width: nx, Height: ny}}
}

// Validate rejects cameras whose viewport mapping would divide by zero.
func (c Camera) Validate() error {
	f := c.Frustum
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidCamera, c.Viewport.Width, c.Viewport.Height)
	case f.Right == f.Left:
		return fmt.Errorf("%w: l == r (%g)", ErrInvalidCamera, f.Left)
	case f.Top == f.Bottom:
		return fmt.Errorf("%w: b == t (%g)", ErrInvalidCamera, f.Bottom)
	}
	return nil
}

// Stats counts projection edge cases. They are reported, never acted on.
type Stats struct {
	Vertices     int
	BehindCamera int // z >= 0
	NonFinite    int // projected x or y is NaN or ±Inf
}

// ProjectVertex applies the perspective divide and viewport map to v.
// Z passes through unchanged as the depth key. Vertices at or behind the
// viewer (z >= 0) are not filtered.
func (c Camera) ProjectVertex(v geometry.Vec3) geometry.Vec3 {
	f := c.Frustum
	x := (v.X / -v.Z) * f.Near
	y := (v.Y / -v.Z) * f.Near

	x = ((x - f.Left) / (f.Right - f.Left)) * float64(c.Viewport.Width)
	y = ((y - f.Bottom) / (f.Top - f.Bottom)) * float64(c.Viewport.Height)
	return geometry.Vec3{X: x, Y: y, Z: v.Z}
}

// Project returns a new slice holding every triangle of tris in pixel space,
// in the same order. tris is not modified and nothing is discarded.
func (c Camera) Project(tris []geometry.Triangle) ([]geometry.Triangle, Stats) {
	out := make([]geometry.Triangle, len(tris))
	var st Stats
	for i, tri := range tris {
		for k, v := range tri.V {
			p := c.ProjectVertex(v)
			st.Vertices++
			if v.Z >= 0 {
				st.BehindCamera++
			}
			if !finite(p.X) || !finite(p.Y) {
				st.NonFinite++
			}
			out[i].V[k] = p
		}
	}
	return out, st
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
