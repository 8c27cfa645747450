package raster

import "trirast/internal/geometry"

// Fragment is one covered sample that passed the depth test.
type Fragment struct {
	X, Y               int
	Alpha, Beta, Gamma float64
	Z                  float64
	Index              int               // triangle index within the pass
	Triangle           geometry.Triangle // screen-space vertices
}

// Shader picks the color written for a fragment. It must be a pure function
// of its argument.
type Shader func(Fragment) Color

// Flat shades every fragment with c.
func Flat(c Color) Shader {
	return func(Fragment) Color { return c }
}

// VertexColors blends c0, c1 and c2 with the fragment's barycentric weights.
func VertexColors(c0, c1, c2 Color) Shader {
	return func(f Fragment) Color {
		mix := func(a, b, c uint8) uint8 {
			return clamp255(f.Alpha*float64(a) + f.Beta*float64(b) + f.Gamma*float64(c))
		}
		return Color{
			R: mix(c0.R, c1.R, c2.R),
			G: mix(c0.G, c1.G, c2.G),
			B: mix(c0.B, c1.B, c2.B),
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
