// Package batch renders many independent passes. Each job owns its own
// FrameStore and runs the single-threaded pipeline start to finish; jobs run
// side by side on a bounded worker pool.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"trirast/internal/config"
	"trirast/internal/export"
	"trirast/internal/raster"
)

// Job is one named pass. Fields set on the embedded Config override the
// batch base config.
type Job struct {
	Name string `json:"name"`
	config.Config
}

// LoadJobs reads a JSON array of jobs.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	for i, j := range jobs {
		if j.Name == "" {
			return nil, fmt.Errorf("batch: %s: job %d has no name", path, i)
		}
	}
	return jobs, nil
}

// Config holds all shared settings for a batch run.
type Config struct {
	Base      config.Config
	OutputDir string
	Workers   int
	Progress  time.Duration // progress log interval; 0 means 2s
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Image   string
	Width   int
	Height  int
	Success bool
	Error   string
	Stats   raster.Result
}

// Run processes all jobs using a worker pool. Results keep the job order.
// Jobs not started before ctx is done are reported with ctx's error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}
	log := raster.Logger()
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch progress", "done", p, "total", total, "per_sec", rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: jobs[idx].Name, Error: err.Error()}
				} else {
					results[idx] = processJob(cfg, jobs[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Debug("batch finished", slog.Int("jobs", total), slog.Duration("elapsed", time.Since(start)))
	return results
}

func processJob(bc Config, job Job) Result {
	cfg := bc.Base.Merge(job.Config)
	cfg.Resolve(config.Flags{})

	res := Result{Name: job.Name, Width: cfg.Width, Height: cfg.Height}
	fail := func(err error) Result {
		res.Error = err.Error()
		raster.Logger().Warn("job failed", "job", job.Name, "err", err)
		return res
	}

	out := job.Output
	if out == "" {
		out = job.Name + ".png"
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(bc.OutputDir, out)
	}
	res.Image = out

	tris, err := cfg.Geometry()
	if err != nil {
		return fail(err)
	}
	col, err := config.ParseColor(cfg.Color)
	if err != nil {
		return fail(err)
	}

	fs, stats, err := raster.RenderNew(cfg.Camera(), tris, raster.Flat(col))
	if err != nil {
		return fail(err)
	}
	res.Stats = stats

	if err := export.Save(out, fs, export.Options{FlipY: *cfg.FlipY, Scale: cfg.Scale}); err != nil {
		return fail(err)
	}

	res.Success = true
	return res
}
