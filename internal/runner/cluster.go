package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pkg.jsn.cam/weatherstats/pkg/partition"
	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// Cluster mimics a distributed run inside one process: each rank owns a
// private partition of the task list, aggregates it with no shared state,
// then ships its partial list to the coordinator as an encoded payload.
// Results merge rank-major, so repeated runs over the same inputs produce
// the same collection.
type Cluster struct {
	Workers      int
	Distribution partition.Strategy
	Gather       GatherMode

	// MaxWorkerElapsed is the slowest rank's wall time from the last Run,
	// the figure a distributed job is billed by.
	MaxWorkerElapsed time.Duration
}

func (c *Cluster) Name() string { return "cluster" }

// gatherMsg is one rank's contribution. The payload crosses the channel
// encoded, keeping the coordinator independent of how ranks lay out their
// private state.
type gatherMsg struct {
	Rank     int
	WorkerID string
	Payload  []byte
	Err      error
	Elapsed  time.Duration
}

// gatherHandle is the completion handle for a non-blocking gather.
type gatherHandle struct {
	done chan struct{}
	out  [][]weather.CityStats
	err  error
}

// wait blocks until the gather completes and returns its result.
func (h *gatherHandle) wait() ([][]weather.CityStats, error) {
	<-h.done
	return h.out, h.err
}

type gather struct {
	workers    int
	msgs       chan gatherMsg
	maxElapsed time.Duration
}

// collect drains one message per rank and decodes the partials into
// rank-major order.
func (g *gather) collect() ([][]weather.CityStats, error) {
	out := make([][]weather.CityStats, g.workers)

	for i := 0; i < g.workers; i++ {
		msg := <-g.msgs
		if msg.Err != nil {
			return nil, fmt.Errorf("rank %d (%s): %w", msg.Rank, msg.WorkerID, msg.Err)
		}

		partial, err := weather.DecodeStats(msg.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode partial from rank %d: %w", msg.Rank, err)
		}

		out[msg.Rank] = partial
		if msg.Elapsed > g.maxElapsed {
			g.maxElapsed = msg.Elapsed
		}
	}

	return out, nil
}

// start kicks off the collection in the background and returns a handle to
// wait on. The merged collection is identical to collect().
func (g *gather) start() *gatherHandle {
	h := &gatherHandle{done: make(chan struct{})}

	go func() {
		defer close(h.done)
		h.out, h.err = g.collect()
	}()

	return h
}

func (c *Cluster) Run(ctx context.Context, tasks []Task, fn TaskFunc) ([][]weather.CityStats, error) {
	plan, err := partition.Plan(len(tasks), c.Workers, c.Distribution)
	if err != nil {
		return nil, err
	}

	g := &gather{workers: c.Workers, msgs: make(chan gatherMsg, c.Workers)}

	var wg sync.WaitGroup
	for rank, indices := range plan {
		wg.Add(1)
		go func(rank int, indices []int) {
			defer wg.Done()

			workerID := uuid.NewString()
			start := time.Now()

			// Private to this rank until encoded.
			partial := make([]weather.CityStats, 0, len(indices))
			for _, i := range indices {
				if ctx.Err() != nil {
					g.msgs <- gatherMsg{Rank: rank, WorkerID: workerID, Err: ctx.Err()}
					return
				}
				partial = append(partial, fn(tasks[i]))
			}

			payload, err := weather.EncodeStats(partial)
			elapsed := time.Since(start)

			log.Debugf("[CLUSTER] rank %d (%s) finished %d tasks in %v", rank, workerID, len(indices), elapsed)
			g.msgs <- gatherMsg{Rank: rank, WorkerID: workerID, Payload: payload, Err: err, Elapsed: elapsed}
		}(rank, indices)
	}

	var out [][]weather.CityStats
	switch c.Gather {
	case GatherNonblocking:
		handle := g.start()
		out, err = handle.wait()
	default:
		out, err = g.collect()
	}

	wg.Wait()
	if err != nil {
		return nil, err
	}

	c.MaxWorkerElapsed = g.maxElapsed

	return out, nil
}
