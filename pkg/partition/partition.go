// Package partition assigns file-level tasks to logical workers. Both
// strategies split the index range [0,F) exactly: every index lands in one
// worker's list, no index twice, regardless of how F and W relate.
package partition

import "fmt"

// Strategy selects how task indices are distributed across workers.
type Strategy string

const (
	// Block hands each worker one contiguous range of ceil(F/W) indices.
	// The last workers may receive a short or empty share.
	Block Strategy = "block"

	// Cyclic deals indices round-robin: worker w gets w, w+W, w+2W, ...
	Cyclic Strategy = "cyclic"
)

// ParseStrategy validates a strategy name from the configuration surface.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Block, Cyclic:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown distribution strategy %q (want block or cyclic)", s)
	}
}

// Assignment maps each worker index to the ordered list of task indices it
// owns. It is built once and read-only thereafter.
type Assignment [][]int

// Plan splits task indices [0,tasks) across the given number of workers.
func Plan(tasks, workers int, strategy Strategy) (Assignment, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", workers)
	}
	if tasks < 0 {
		return nil, fmt.Errorf("task count must not be negative, got %d", tasks)
	}

	assign := make(Assignment, workers)

	switch strategy {
	case Block:
		chunk := (tasks + workers - 1) / workers
		for w := range assign {
			lo := w * chunk
			hi := min(lo+chunk, tasks)
			for i := lo; i < hi; i++ {
				assign[w] = append(assign[w], i)
			}
		}
	case Cyclic:
		for w := range assign {
			for i := w; i < tasks; i += workers {
				assign[w] = append(assign[w], i)
			}
		}
	default:
		return nil, fmt.Errorf("unknown distribution strategy %q", strategy)
	}

	return assign, nil
}

// TaskCount returns the total number of task indices across all workers.
func (a Assignment) TaskCount() int {
	n := 0
	for _, idxs := range a {
		n += len(idxs)
	}

	return n
}
