package geometry

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestAppendSphereCount(t *testing.T) {
	tests := []struct {
		name string
		cfg  SphereConfig
		want int
	}{
		{"default", DefaultSphere(), 1600},
		{"single patch", SphereConfig{Stacks: 1, Slices: 1, Radius: 1}, 2},
		{"uneven", SphereConfig{Stacks: 3, Slices: 7, Radius: 0.5, ZOffset: -3}, 42},
		{"zero stacks", SphereConfig{Stacks: 0, Slices: 8, Radius: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendSphere(nil, tt.cfg)
			if len(got) != tt.want {
				t.Errorf("len(AppendSphere) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAppendSphereOnSurface(t *testing.T) {
	cfg := SphereConfig{Stacks: 6, Slices: 12, Radius: 1.5, ZOffset: -4}
	center := r3.Vec{Z: cfg.ZOffset}
	for i, tri := range AppendSphere(nil, cfg) {
		for k, v := range tri.V {
			d := r3.Norm(r3.Sub(v, center))
			if math.Abs(d-cfg.Radius) > 1e-9 {
				t.Fatalf("triangle %d vertex %d at distance %g from center, want %g", i, k, d, cfg.Radius)
			}
		}
	}
}

func TestAppendSphereOrder(t *testing.T) {
	cfg := SphereConfig{Stacks: 2, Slices: 4, Radius: 1}
	tris := AppendSphere(nil, cfg)

	// First patch starts at the north pole with theta = 0.
	north := Vec3{Z: 1}
	if r3.Norm(r3.Sub(tris[0].V[0], north)) > 1e-12 {
		t.Errorf("first vertex = %v, want %v", tris[0].V[0], north)
	}
	// Each patch shares v0 and v2 between its two triangles.
	for p := 0; p < len(tris); p += 2 {
		a, b := tris[p], tris[p+1]
		if a.V[0] != b.V[0] || a.V[2] != b.V[1] {
			t.Errorf("patch %d triangles do not share the diagonal: %v / %v", p/2, a, b)
		}
	}
}

func TestAppendSphereKeepsExisting(t *testing.T) {
	marker := Tri(Vec3{X: 9}, Vec3{Y: 9}, Vec3{Z: 9})
	dst := make([]Triangle, 1, 64)
	dst[0] = marker

	out := AppendSphere(dst, SphereConfig{Stacks: 2, Slices: 2, Radius: 1})
	if len(out) != 9 {
		t.Fatalf("len = %d, want 9", len(out))
	}
	if out[0] != marker || dst[0] != marker {
		t.Error("existing entry was modified")
	}
}

func TestSphereValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SphereConfig
		wantErr bool
	}{
		{"default", DefaultSphere(), false},
		{"no stacks", SphereConfig{Slices: 4, Radius: 1}, true},
		{"no slices", SphereConfig{Stacks: 4, Radius: 1}, true},
		{"zero radius", SphereConfig{Stacks: 4, Slices: 4}, true},
		{"nan radius", SphereConfig{Stacks: 4, Slices: 4, Radius: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSphere) {
				t.Errorf("Validate() = %v, want ErrInvalidSphere", err)
			}
		})
	}
}

func TestAppendQuad(t *testing.T) {
	a, b, c, d := Vec3{X: -1, Y: -1}, Vec3{X: 1, Y: -1}, Vec3{X: 1, Y: 1}, Vec3{X: -1, Y: 1}
	got := AppendQuad(nil, a, b, c, d)
	want := []Triangle{Tri(a, b, c), Tri(a, c, d)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AppendQuad = %v, want %v", got, want)
	}
}

func TestTriangleBounds(t *testing.T) {
	tri := Tri(Vec3{X: 3, Y: -1, Z: 2}, Vec3{X: -2, Y: 4, Z: 0}, Vec3{X: 1, Y: 1, Z: -5})
	lo, hi := tri.Bounds()
	if lo != (Vec3{X: -2, Y: -1, Z: -5}) || hi != (Vec3{X: 3, Y: 4, Z: 2}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}
