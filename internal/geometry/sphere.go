package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSphere is returned by SphereConfig.Validate.
var ErrInvalidSphere = errors.New("geometry: invalid sphere")

// SphereConfig describes a UV-sphere tessellation placed in camera space.
type SphereConfig struct {
	Stacks  int     `json:"stacks"`
	Slices  int     `json:"slices"`
	Radius  float64 `json:"radius"`
	ZOffset float64 `json:"zOffset"`
}

// DefaultSphere returns the reference scene: radius 2, seven units in front
// of the viewer.
func DefaultSphere() SphereConfig {
	return SphereConfig{
		Stacks:  20,
		Slices:  40,
		Radius:  2.0,
		ZOffset: -7,
	}
}

// Validate reports whether the tessellation parameters are usable.
func (c SphereConfig) Validate() error {
	switch {
	case c.Stacks <= 0:
		return fmt.Errorf("%w: stacks %d", ErrInvalidSphere, c.Stacks)
	case c.Slices <= 0:
		return fmt.Errorf("%w: slices %d", ErrInvalidSphere, c.Slices)
	case !(c.Radius > 0):
		return fmt.Errorf("%w: radius %g", ErrInvalidSphere, c.Radius)
	}
	return nil
}

// TriangleCount is the number of triangles AppendSphere emits for c.
func (c SphereConfig) TriangleCount() int {
	return 2 * c.Stacks * c.Slices
}

// AppendSphere tessellates the sphere into two triangles per (band, wedge)
// patch and appends them to dst, band-major. Entries already in dst are left
// alone. Patches touching a pole come out with two coincident vertices; they
// are emitted anyway and rasterize to nothing.
func AppendSphere(dst []Triangle, c SphereConfig) []Triangle {
	if c.Stacks <= 0 || c.Slices <= 0 {
		return dst
	}
	dst = grow(dst, c.TriangleCount())

	point := func(phi, theta float64) Vec3 {
		sp, cp := math.Sincos(phi)
		st, ct := math.Sincos(theta)
		return Vec3{
			X: c.Radius * sp * ct,
			Y: c.Radius * sp * st,
			Z: c.Radius*cp + c.ZOffset,
		}
	}

	stacks, slices := float64(c.Stacks), float64(c.Slices)
	for i := 0; i < c.Stacks; i++ {
		phi1 := math.Pi * float64(i) / stacks
		phi2 := math.Pi * float64(i+1) / stacks
		for j := 0; j < c.Slices; j++ {
			theta1 := 2 * math.Pi * float64(j) / slices
			theta2 := 2 * math.Pi * float64(j+1) / slices

			v0 := point(phi1, theta1)
			v1 := point(phi2, theta1)
			v2 := point(phi2, theta2)
			v3 := point(phi1, theta2)

			dst = append(dst, Tri(v0, v1, v2), Tri(v0, v2, v3))
		}
	}
	return dst
}

func grow(s []Triangle, n int) []Triangle {
	if cap(s)-len(s) >= n {
		return s
	}
	out := make([]Triangle, len(s), len(s)+n)
	copy(out, s)
	return out
}
