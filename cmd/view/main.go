// Command view renders a scene once and shows the finished frame in a
// window. Rendering completes before the window opens; the window only
// blits the frame.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"trirast/internal/config"
	"trirast/internal/export"
	"trirast/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	mesh := flag.String("mesh", "", "STL/OBJ/PLY file to render instead of the sphere")
	zoom := flag.Int("zoom", 1, "Window scale factor")
	verbose := flag.Bool("v", false, "Log per-pass diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Mesh: *mesh})

	frame, err := render(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(frame, max(*zoom, 1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// render produces the RGBA pixels to present, flipped when the config asks
// for a bottom-up presentation.
func render(cfg config.Config) (*viewer, error) {
	tris, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	col, err := config.ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	fs, _, err := raster.RenderNew(cfg.Camera(), tris, raster.Flat(col))
	if err != nil {
		return nil, err
	}
	img := export.Prepare(fs, export.Options{FlipY: *cfg.FlipY})
	return &viewer{width: fs.Width, height: fs.Height, pix: img.Pix}, nil
}

func run(v *viewer, zoom int) error {
	ebiten.SetWindowTitle("Rasterizer")
	ebiten.SetWindowSize(v.width*zoom, v.height*zoom)
	return ebiten.RunGame(v)
}

type viewer struct {
	width, height int
	pix           []byte // opaque RGBA, row 0 on top
	img           *ebiten.Image
}

func (v *viewer) Update() error { return nil }

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = ebiten.NewImage(v.width, v.height)
		v.img.WritePixels(v.pix)
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}
