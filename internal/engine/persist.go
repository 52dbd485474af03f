package engine

import (
	"fmt"
	"sort"
	"time"

	"pkg.jsn.cam/weatherstats/pkg/storage"
	"pkg.jsn.cam/weatherstats/pkg/weather"
)

var runsBucket = []byte("runs")

// RunRecord is the persisted form of a completed run.
type RunRecord struct {
	RunID     string          `json:"runId"`
	StartedAt time.Time       `json:"startedAt"`
	Backend   string          `json:"backend"`
	Workers   int             `json:"workers"`
	ElapsedMs int64           `json:"elapsedMs"`
	Summary   weather.Summary `json:"summary"`
}

// persistRun appends the run's record to the database at path.
func persistRun(path string, result *Result) error {
	backend, err := storage.NewBboltBackend(path)
	if err != nil {
		return err
	}
	defer backend.Close()

	record := RunRecord{
		RunID:     result.RunID,
		StartedAt: time.Now().UTC(),
		Backend:   result.Backend,
		Workers:   result.Workers,
		ElapsedMs: result.Elapsed.Milliseconds(),
		Summary:   result.Summary,
	}

	value, err := storage.EncodeJSON(record)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}

	return backend.Put(runsBucket, []byte(result.RunID), value)
}

// LoadRuns reads every persisted run record from the database at path,
// oldest first.
func LoadRuns(path string) ([]RunRecord, error) {
	backend, err := storage.NewBboltBackend(path)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	var records []RunRecord
	err = backend.ForEach(runsBucket, func(k, v []byte) error {
		var record RunRecord
		if err := storage.DecodeJSON(v, &record); err != nil {
			return fmt.Errorf("decode run record %s: %w", k, err)
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.Before(records[j].StartedAt)
	})

	return records, nil
}
