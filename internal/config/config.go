package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"trirast/internal/camera"
	"trirast/internal/geometry"
	"trirast/internal/raster"
)

// Config holds everything one render pass needs.
type Config struct {
	// Output resolution (nx, ny)
	Width  int `json:"width"`
	Height int `json:"height"`

	Frustum *camera.Frustum        `json:"frustum,omitempty"`
	Sphere  *geometry.SphereConfig `json:"sphere,omitempty"`

	// Mesh, when set, replaces the sphere with an STL/OBJ/PLY file.
	Mesh      string              `json:"mesh,omitempty"`
	Placement *geometry.Placement `json:"placement,omitempty"`

	Color  string `json:"color"` // #rrggbb
	Output string `json:"output"`
	FlipY  *bool  `json:"flip_y,omitempty"`
	Scale  int    `json:"scale"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width   int
	Height  int
	Mesh    string
	Output  string
	Color   string
	Scale   int
	Workers int
}

// Resolve applies flag overrides, then fills every unset field with the
// reference scene defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Color != "" {
		c.Color = flags.Color
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = 512
	}
	if c.Frustum == nil {
		f := camera.DefaultFrustum()
		c.Frustum = &f
	}
	if c.Sphere == nil {
		s := geometry.DefaultSphere()
		c.Sphere = &s
	}
	if c.Placement == nil {
		p := geometry.DefaultPlacement()
		c.Placement = &p
	}
	if c.Color == "" {
		c.Color = "#ffffff"
	}
	if c.Output == "" {
		c.Output = "render.png"
	}
	if c.FlipY == nil {
		// The reference presenter draws row 0 at the bottom.
		flip := true
		c.FlipY = &flip
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Merge returns c with every field set in o taking precedence.
func (c Config) Merge(o Config) Config {
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Frustum != nil {
		c.Frustum = o.Frustum
	}
	if o.Sphere != nil {
		c.Sphere = o.Sphere
	}
	if o.Mesh != "" {
		c.Mesh = o.Mesh
	}
	if o.Placement != nil {
		c.Placement = o.Placement
	}
	if o.Color != "" {
		c.Color = o.Color
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.FlipY != nil {
		c.FlipY = o.FlipY
	}
	if o.Scale > 0 {
		c.Scale = o.Scale
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	return c
}

// Camera builds the camera described by a resolved config.
func (c *Config) Camera() camera.Camera {
	return camera.New(*c.Frustum, c.Width, c.Height)
}

// Geometry builds the triangle list: the mesh file if one is set, otherwise
// the sphere.
func (c *Config) Geometry() ([]geometry.Triangle, error) {
	if c.Mesh != "" {
		return geometry.LoadMesh(c.Mesh, *c.Placement)
	}
	if err := c.Sphere.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return geometry.AppendSphere(nil, *c.Sphere), nil
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (raster.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return raster.Color{}, fmt.Errorf("config: color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return raster.Color{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	return raster.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
