package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkg.jsn.cam/weatherstats/internal/runner"
)

// DiscoverCityFiles lists the .csv files under dir in lexical order and
// turns them into tasks, at most maxCities of them. The city name is the
// file name without its extension, underscores replaced with spaces.
func DiscoverCityFiles(dir string, maxCities int) ([]runner.Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}

	tasks := make([]runner.Task, 0, maxCities)
	for _, entry := range entries {
		if len(tasks) >= maxCities {
			break
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		city := strings.TrimSuffix(entry.Name(), ".csv")
		city = strings.ReplaceAll(city, "_", " ")

		tasks = append(tasks, runner.Task{
			Index: len(tasks),
			Path:  filepath.Join(dir, entry.Name()),
			City:  city,
		})
	}

	return tasks, nil
}
