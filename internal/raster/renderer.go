package raster

import (
	"errors"
	"fmt"
	"log/slog"

	"trirast/internal/camera"
	"trirast/internal/geometry"
)

// ErrSizeMismatch is returned when the camera viewport and the frame store
// disagree on resolution, or the store's grids do not match its own size.
var ErrSizeMismatch = errors.New("raster: viewport does not match frame store")

// Result carries the diagnostics of one pass.
type Result struct {
	Projection camera.Stats
	Raster     Stats
}

// Render runs one full pass: clear fs, project tris through cam, rasterize
// them in order with shade. tris is left untouched, so the same source can be
// rendered again with another camera.
func Render(fs *FrameStore, cam camera.Camera, tris []geometry.Triangle, shade Shader) (Result, error) {
	if err := cam.Validate(); err != nil {
		return Result{}, err
	}
	if cam.Viewport.Width != fs.Width || cam.Viewport.Height != fs.Height {
		return Result{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			cam.Viewport.Width, cam.Viewport.Height, fs.Width, fs.Height)
	}

	if !fs.consistent() {
		return Result{}, fmt.Errorf("%w: grids hold %d depth and %d color cells for %dx%d",
			ErrSizeMismatch, len(fs.Depth), len(fs.Color), fs.Width, fs.Height)
	}
	fs.Clear()
	screen, pst := cam.Project(tris)

	r := NewRasterizer(fs, shade)
	r.Draw(screen)

	res := Result{Projection: pst, Raster: r.Stats}
	logPass(res)
	return res, nil
}

// RenderNew allocates a frame store sized to cam's viewport and renders into it.
func RenderNew(cam camera.Camera, tris []geometry.Triangle, shade Shader) (*FrameStore, Result, error) {
	if err := cam.Validate(); err != nil {
		return nil, Result{}, err
	}
	fs := NewFrameStore(cam.Viewport.Width, cam.Viewport.Height)
	res, err := Render(fs, cam, tris, shade)
	if err != nil {
		return nil, Result{}, err
	}
	return fs, res, nil
}

func logPass(res Result) {
	l := Logger()
	l.Debug("render pass",
		slog.Int("triangles", res.Raster.Triangles),
		slog.Int("fragments", res.Raster.Fragments),
		slog.Int("written", res.Raster.Written),
		slog.Int("depth_rejected", res.Raster.DepthRejected),
		slog.Int("offscreen", res.Raster.Offscreen),
		slog.Int("degenerate", res.Raster.Degenerate),
	)
	if res.Projection.BehindCamera > 0 || res.Projection.NonFinite > 0 {
		l.Warn("geometry at or behind the camera plane",
			slog.Int("vertices", res.Projection.Vertices),
			slog.Int("behind_camera", res.Projection.BehindCamera),
			slog.Int("non_finite", res.Projection.NonFinite),
		)
	}
}
