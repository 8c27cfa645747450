// Command rasterize renders a triangle scene (a UV sphere by default, or a
// mesh file) with the software z-buffer rasterizer and writes the frame to
// disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"trirast/internal/batch"
	"trirast/internal/config"
	"trirast/internal/export"
	"trirast/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	jobsFile := flag.String("jobs", "", "Path to a JSON array of jobs to render as a batch")
	width := flag.Int("width", 0, "Output width in pixels (default: 512)")
	height := flag.Int("height", 0, "Output height in pixels (default: 512)")
	output := flag.String("output", "", "Output file, or directory with -jobs (default: render.png)")
	mesh := flag.String("mesh", "", "STL/OBJ/PLY file to render instead of the sphere")
	color := flag.String("color", "", "Fill color as #rrggbb (default: #ffffff)")
	scale := flag.Int("scale", 0, "Integer upscale applied on export")
	workers := flag.Int("workers", 0, "Number of batch workers (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log per-pass diagnostics")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		Width:   *width,
		Height:  *height,
		Mesh:    *mesh,
		Output:  *output,
		Color:   *color,
		Scale:   *scale,
		Workers: *workers,
	}

	if *jobsFile != "" {
		if err := runBatch(cfg, flags, *jobsFile, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg.Resolve(flags)
	if err := renderOne(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderOne(cfg config.Config, logger *slog.Logger) error {
	tris, err := cfg.Geometry()
	if err != nil {
		return err
	}
	col, err := config.ParseColor(cfg.Color)
	if err != nil {
		return err
	}

	start := time.Now()
	fs, res, err := raster.RenderNew(cfg.Camera(), tris, raster.Flat(col))
	if err != nil {
		return err
	}
	if err := export.Save(cfg.Output, fs, export.Options{FlipY: *cfg.FlipY, Scale: cfg.Scale}); err != nil {
		return err
	}

	logger.Info("rendered",
		"output", cfg.Output,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"triangles", res.Raster.Triangles,
		"pixels", fs.Covered(),
		"degenerate", res.Raster.Degenerate,
		"behind_camera", res.Projection.BehindCamera,
		"elapsed", time.Since(start),
	)
	return nil
}

func runBatch(base config.Config, flags config.Flags, jobsFile string, logger *slog.Logger) error {
	jobs, err := batch.LoadJobs(jobsFile)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		logger.Info("no jobs to render")
		return nil
	}

	outDir := flags.Output
	flags.Output = ""
	base.Resolve(flags)
	if outDir == "" {
		outDir = "renders"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("batch start", "jobs", len(jobs), "workers", base.Workers, "output", outDir)
	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		Base:      base,
		OutputDir: outDir,
		Workers:   base.Workers,
	}, jobs)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			logger.Error("job failed", "job", r.Name, "err", r.Error)
		}
	}
	logger.Info("batch done", "rendered", len(results)-failed, "total", len(results), "elapsed", time.Since(start))

	// Write manifest
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Warn("manifest write failed", "err", err)
	} else {
		logger.Info("manifest written", "path", manifestPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}
