// Package geometry holds the camera-space triangle model and the generators
// that produce it.
package geometry

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 is a point in camera space: right-handed, viewer at the origin looking
// down -Z. After projection X/Y are pixel coordinates and Z is the untouched
// camera-space depth.
type Vec3 = r3.Vec

// Triangle is three vertices. Order only affects the sign of the barycentric
// denominator; nothing culls on winding.
type Triangle struct {
	V [3]Vec3
}

// Tri builds a Triangle from three vertices.
func Tri(a, b, c Vec3) Triangle {
	return Triangle{V: [3]Vec3{a, b, c}}
}

// Bounds returns the min and max corners of the triangle's axis-aligned box.
func (t Triangle) Bounds() (lo, hi Vec3) {
	lo, hi = t.V[0], t.V[0]
	for _, v := range t.V[1:] {
		lo = Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
		hi = Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
	}
	return lo, hi
}

// AppendQuad splits the quad a-b-c-d into {a,b,c} and {a,c,d} and appends
// both to dst.
func AppendQuad(dst []Triangle, a, b, c, d Vec3) []Triangle {
	return append(dst, Tri(a, b, c), Tri(a, c, d))
}
