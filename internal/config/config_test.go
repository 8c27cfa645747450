package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trirast/internal/camera"
	"trirast/internal/geometry"
	"trirast/internal/raster"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	if c.Width != 512 || c.Height != 512 {
		t.Errorf("size = %dx%d, want 512x512", c.Width, c.Height)
	}
	if *c.Frustum != camera.DefaultFrustum() {
		t.Errorf("frustum = %+v", *c.Frustum)
	}
	if *c.Sphere != geometry.DefaultSphere() {
		t.Errorf("sphere = %+v", *c.Sphere)
	}
	if c.Color != "#ffffff" || c.Output != "render.png" || !*c.FlipY || c.Scale != 1 || c.Workers <= 0 {
		t.Errorf("resolved = %+v", c)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	c := Config{Width: 100, Output: "file.png"}
	c.Resolve(Flags{Width: 64, Height: 32, Output: "flag.ppm", Workers: 3})
	if c.Width != 64 || c.Height != 32 || c.Output != "flag.ppm" || c.Workers != 3 {
		t.Errorf("resolved = %+v", c)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"width": 64, "height": 48,
		"frustum": {"l": -0.2, "r": 0.2, "b": -0.1, "t": 0.1, "n": -0.1, "f": -100},
		"sphere": {"stacks": 4, "slices": 8, "radius": 1, "zOffset": -3},
		"color": "#ff8000",
		"flip_y": false
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Resolve(Flags{})

	if c.Width != 64 || c.Height != 48 {
		t.Errorf("size = %dx%d", c.Width, c.Height)
	}
	if c.Frustum.Left != -0.2 || c.Frustum.Far != -100 {
		t.Errorf("frustum = %+v", *c.Frustum)
	}
	want := geometry.SphereConfig{Stacks: 4, Slices: 8, Radius: 1, ZOffset: -3}
	if *c.Sphere != want {
		t.Errorf("sphere = %+v, want %+v", *c.Sphere, want)
	}
	if *c.FlipY {
		t.Error("flip_y false in file was overridden")
	}

	tris, err := c.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 64 {
		t.Errorf("geometry = %d triangles, want 64", len(tris))
	}
	if cam := c.Camera(); cam.Viewport.Width != 64 || cam.Viewport.Height != 48 {
		t.Errorf("camera viewport = %+v", cam.Viewport)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load(missing) returned nil error")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad json) returned nil error")
	}
}

func TestGeometryInvalidSphere(t *testing.T) {
	c := Config{Sphere: &geometry.SphereConfig{Stacks: 0, Slices: 4, Radius: 1}}
	c.Resolve(Flags{})
	if _, err := c.Geometry(); !errors.Is(err, geometry.ErrInvalidSphere) {
		t.Errorf("Geometry() = %v, want ErrInvalidSphere", err)
	}
}

func TestMerge(t *testing.T) {
	base := Config{Width: 10, Output: "a.png", Color: "#000000"}
	flip := false
	got := base.Merge(Config{Output: "b.png", FlipY: &flip})
	if got.Width != 10 || got.Output != "b.png" || got.Color != "#000000" || got.FlipY == nil || *got.FlipY {
		t.Errorf("Merge = %+v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    raster.Color
		wantErr bool
	}{
		{"#ffffff", raster.White, false},
		{"ff8000", raster.Color{R: 255, G: 128}, false},
		{" #0A0b0C ", raster.Color{R: 10, G: 11, B: 12}, false},
		{"#fff", raster.Color{}, true},
		{"#gggggg", raster.Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
