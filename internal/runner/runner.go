// Package runner drives per-file aggregation across workers. Three backends
// share one contract: run every task exactly once, deliver each produced
// record to the caller exactly once, and return only after all workers have
// finished. Merged-stream ordering between workers is not part of the
// contract; ranking restores order via explicit sort keys.
package runner

import (
	"context"
	"fmt"
	"runtime"

	"pkg.jsn.cam/weatherstats/pkg/partition"
	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// Task is the unit of parallel work: one city file.
type Task struct {
	Index int
	Path  string
	City  string
}

// TaskFunc produces the statistics for a single task. It must be safe for
// concurrent use; each invocation owns its result exclusively until it is
// handed back to the coordinator.
type TaskFunc func(Task) weather.CityStats

// Backend schedules the task list and returns the per-worker result lists.
// The slice is complete when Run returns: the barrier before the merge is
// the return itself.
type Backend interface {
	Name() string
	Run(ctx context.Context, tasks []Task, fn TaskFunc) ([][]weather.CityStats, error)
}

// Schedule selects how the shared-memory pool hands out file indices.
type Schedule string

const (
	// ScheduleStatic pre-assigns fixed chunks round-robin; no shared state
	// between workers.
	ScheduleStatic Schedule = "static"

	// ScheduleDynamic hands out chunks of a fixed size from a shared
	// dispenser as workers become free.
	ScheduleDynamic Schedule = "dynamic"

	// ScheduleGuided hands out shrinking chunks proportional to the work
	// remaining, never smaller than the configured chunk size.
	ScheduleGuided Schedule = "guided"
)

// ParseSchedule validates a scheduling policy name.
func ParseSchedule(s string) (Schedule, error) {
	switch Schedule(s) {
	case ScheduleStatic, ScheduleDynamic, ScheduleGuided:
		return Schedule(s), nil
	default:
		return "", fmt.Errorf("unknown schedule %q (want static, dynamic or guided)", s)
	}
}

// GatherMode selects how the cluster coordinator collects partial results.
type GatherMode string

const (
	// GatherBlocking waits for every worker's message inline.
	GatherBlocking GatherMode = "blocking"

	// GatherNonblocking starts the collection and waits on its completion
	// handle, allowing the coordinator to overlap unrelated work. The
	// merged collection is identical to the blocking form.
	GatherNonblocking GatherMode = "nonblocking"
)

// ParseGatherMode validates a gather mode name.
func ParseGatherMode(s string) (GatherMode, error) {
	switch GatherMode(s) {
	case GatherBlocking, GatherNonblocking:
		return GatherMode(s), nil
	default:
		return "", fmt.Errorf("unknown gather mode %q (want blocking or nonblocking)", s)
	}
}

// Config carries the backend-specific knobs from the CLI.
type Config struct {
	Workers      int
	Schedule     Schedule           // pool only
	ChunkSize    int                // pool only
	Distribution partition.Strategy // cluster only
	Gather       GatherMode         // cluster only
}

// New builds the named backend. Zero-valued knobs fall back to defaults:
// available parallelism for Workers, chunk size 1, dynamic schedule, block
// distribution, blocking gather.
func New(name string, cfg Config) (Backend, error) {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 1
	}
	if cfg.Schedule == "" {
		cfg.Schedule = ScheduleDynamic
	}
	if cfg.Distribution == "" {
		cfg.Distribution = partition.Block
	}
	if cfg.Gather == "" {
		cfg.Gather = GatherBlocking
	}

	switch name {
	case "sequential":
		return &Sequential{}, nil
	case "pool":
		return &Pool{Workers: cfg.Workers, Schedule: cfg.Schedule, ChunkSize: cfg.ChunkSize}, nil
	case "cluster":
		return &Cluster{Workers: cfg.Workers, Distribution: cfg.Distribution, Gather: cfg.Gather}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want sequential, pool or cluster)", name)
	}
}
