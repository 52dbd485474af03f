// Package engine wires discovery, the selected backend and the rankings
// into a single run, and optionally records the outcome for later
// inspection.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/jamiealquiza/tachymeter"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"pkg.jsn.cam/weatherstats/internal/runner"
	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// DefaultMaxCities caps how many city files a run will take on unless
// overridden.
const DefaultMaxCities = 2000

// Config describes one run.
type Config struct {
	DataDir   string
	MaxCities int
	Backend   string
	Runner    runner.Config
	DBPath    string // empty disables run persistence
	Progress  bool
}

// Result is the outcome of a run.
type Result struct {
	RunID            string
	Cities           []weather.CityStats
	Summary          weather.Summary
	Backend          string
	Workers          int
	Elapsed          time.Duration
	MaxWorkerElapsed time.Duration
	Latency          *tachymeter.Metrics
}

// Run executes one full aggregation: discover city files, fan the tasks
// out on the configured backend, merge the per-worker lists and summarize.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.MaxCities < 0 {
		return nil, fmt.Errorf("max cities must not be negative, got %d", cfg.MaxCities)
	}
	if cfg.Runner.Workers < 1 {
		cfg.Runner.Workers = runtime.NumCPU()
	}
	if cfg.Backend == "sequential" {
		cfg.Runner.Workers = 1
	}

	backend, err := runner.New(cfg.Backend, cfg.Runner)
	if err != nil {
		return nil, err
	}

	tasks, err := DiscoverCityFiles(cfg.DataDir, cfg.MaxCities)
	if err != nil {
		return nil, err
	}

	log.Infof("[ENGINE] %d city files in %s, backend %s", len(tasks), cfg.DataDir, backend.Name())

	meter := tachymeter.New(&tachymeter.Config{Size: len(tasks) + 1})

	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.Default(int64(len(tasks)), "aggregating")
	}

	fn := func(task runner.Task) weather.CityStats {
		start := time.Now()
		stats := weather.ProcessFile(task.Path, task.City)
		meter.AddTime(time.Since(start))
		if bar != nil {
			bar.Add(1)
		}
		return stats
	}

	start := time.Now()
	lists, err := backend.Run(ctx, tasks, fn)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", backend.Name(), err)
	}
	elapsed := time.Since(start)

	cities := weather.Merge(lists...)

	result := &Result{
		RunID:   uuid.NewString(),
		Cities:  cities,
		Summary: weather.Summarize(cities),
		Backend: backend.Name(),
		Workers: cfg.Runner.Workers,
		Elapsed: elapsed,
	}
	if len(tasks) > 0 {
		result.Latency = meter.Calc()
	}
	if cluster, ok := backend.(*runner.Cluster); ok {
		result.MaxWorkerElapsed = cluster.MaxWorkerElapsed
	}

	log.Infof("[ENGINE] run %s: %d cities, %d records in %v",
		result.RunID, result.Summary.CityCount, result.Summary.TotalRecords, elapsed)

	if cfg.DBPath != "" {
		// A failed write should not sink the run; the report still renders.
		if err := persistRun(cfg.DBPath, result); err != nil {
			log.Warnf("[ENGINE] persist run %s: %v", result.RunID, err)
		}
	}

	return result, nil
}
