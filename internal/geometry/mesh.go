package geometry

import (
	"fmt"

	"github.com/fogleman/fauxgl"
)

// Placement positions a loaded mesh in camera space.
type Placement struct {
	Scale   float64 `json:"scale"`
	ZOffset float64 `json:"zOffset"`
}

// DefaultPlacement sits a unit-sized mesh where the default sphere would be.
func DefaultPlacement() Placement {
	return Placement{Scale: 2, ZOffset: -7}
}

// LoadMesh reads an STL, OBJ or PLY file, fits it into the bi-unit cube,
// scales it by p.Scale and pushes it along Z by p.ZOffset. Triangle order
// follows the file.
func LoadMesh(path string, p Placement) ([]Triangle, error) {
	mesh, err := fauxgl.LoadMesh(path)
	if err != nil {
		return nil, fmt.Errorf("geometry: load %s: %w", path, err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("geometry: load %s: no triangles", path)
	}
	mesh.BiUnitCube()

	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	place := func(v fauxgl.Vector) Vec3 {
		return Vec3{X: v.X * scale, Y: v.Y * scale, Z: v.Z*scale + p.ZOffset}
	}

	out := make([]Triangle, 0, len(mesh.Triangles))
	for _, t := range mesh.Triangles {
		out = append(out, Tri(place(t.V1.Position), place(t.V2.Position), place(t.V3.Position)))
	}
	return out, nil
}
