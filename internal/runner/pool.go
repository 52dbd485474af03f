package runner

import (
	"context"
	"sync"

	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// Pool runs tasks on a fixed set of goroutines sharing the task list.
// Workers never write shared aggregation state: each finished result is
// sent over a channel and a single coordinator goroutine slots it into
// the file-indexed output buffer. The merged stream therefore comes back
// in file-index order regardless of which worker ran which task.
type Pool struct {
	Workers   int
	Schedule  Schedule
	ChunkSize int
}

func (p *Pool) Name() string { return "pool" }

// chunkSource hands out half-open index ranges until the task list is
// exhausted.
type chunkSource interface {
	next() (lo, hi int, ok bool)
}

// staticSource walks a worker's pre-assigned chunks: chunk c*workers+rank
// for c = 0, 1, 2, ... Nothing is shared, so no locking.
type staticSource struct {
	pos    int
	stride int
	chunk  int
	limit  int
}

func newStaticSource(rank, workers, chunk, limit int) *staticSource {
	return &staticSource{
		pos:    rank * chunk,
		stride: chunk * workers,
		chunk:  chunk,
		limit:  limit,
	}
}

func (s *staticSource) next() (int, int, bool) {
	if s.pos >= s.limit {
		return 0, 0, false
	}

	lo := s.pos
	hi := min(lo+s.chunk, s.limit)
	s.pos += s.stride

	return lo, hi, true
}

// dynamicSource is a shared dispenser: workers take the next chunk as they
// become free. In guided mode the chunk shrinks with the remaining work but
// never below the configured size.
type dynamicSource struct {
	mu      sync.Mutex
	pos     int
	limit   int
	chunk   int
	workers int
	guided  bool
}

func (d *dynamicSource) next() (int, int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pos >= d.limit {
		return 0, 0, false
	}

	size := d.chunk
	if d.guided {
		if proportional := (d.limit - d.pos) / d.workers; proportional > size {
			size = proportional
		}
	}

	lo := d.pos
	hi := min(lo+size, d.limit)
	d.pos = hi

	return lo, hi, true
}

type poolResult struct {
	index int
	stats weather.CityStats
}

func (p *Pool) Run(ctx context.Context, tasks []Task, fn TaskFunc) ([][]weather.CityStats, error) {
	out := make([]weather.CityStats, len(tasks))
	results := make(chan poolResult, p.Workers)
	done := make(chan struct{})

	// Single writer for the output buffer.
	go func() {
		defer close(done)
		for r := range results {
			out[r.index] = r.stats
		}
	}()

	shared := &dynamicSource{
		limit:   len(tasks),
		chunk:   p.ChunkSize,
		workers: p.Workers,
		guided:  p.Schedule == ScheduleGuided,
	}

	var wg sync.WaitGroup
	for rank := 0; rank < p.Workers; rank++ {
		var source chunkSource = shared
		if p.Schedule == ScheduleStatic {
			source = newStaticSource(rank, p.Workers, p.ChunkSize, len(tasks))
		}

		wg.Add(1)
		go func(source chunkSource) {
			defer wg.Done()

			for {
				lo, hi, ok := source.next()
				if !ok {
					return
				}
				for i := lo; i < hi; i++ {
					if ctx.Err() != nil {
						return
					}
					results <- poolResult{index: i, stats: fn(tasks[i])}
				}
			}
		}(source)
	}

	wg.Wait()
	close(results)
	<-done

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return [][]weather.CityStats{out}, nil
}
