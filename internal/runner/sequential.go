package runner

import (
	"context"

	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// Sequential runs every task in discovery order on the calling goroutine.
// It is the reference backend the concurrent ones are checked against.
type Sequential struct{}

func (s *Sequential) Name() string { return "sequential" }

func (s *Sequential) Run(ctx context.Context, tasks []Task, fn TaskFunc) ([][]weather.CityStats, error) {
	out := make([]weather.CityStats, 0, len(tasks))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, fn(task))
	}

	return [][]weather.CityStats{out}, nil
}
