package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"pkg.jsn.cam/weatherstats/internal/engine"
	"pkg.jsn.cam/weatherstats/internal/report"
	"pkg.jsn.cam/weatherstats/internal/runner"
	"pkg.jsn.cam/weatherstats/pkg/partition"
)

// TestFullPipeline runs the whole flow end to end: a data directory of
// city CSV files goes in, a rendered report comes out, and every backend
// renders the identical report body.
func TestFullPipeline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir)

	configs := map[string]engine.Config{
		"sequential": {Backend: "sequential"},
		"pool-static": {
			Backend: "pool",
			Runner:  runner.Config{Workers: 3, Schedule: runner.ScheduleStatic, ChunkSize: 2},
		},
		"pool-guided": {
			Backend: "pool",
			Runner:  runner.Config{Workers: 3, Schedule: runner.ScheduleGuided},
		},
		"cluster-cyclic-nonblocking": {
			Backend: "cluster",
			Runner:  runner.Config{Workers: 3, Distribution: partition.Cyclic, Gather: runner.GatherNonblocking},
		},
	}

	var want string
	for name, cfg := range configs {
		cfg.DataDir = dir
		cfg.MaxCities = engine.DefaultMaxCities

		result, err := engine.Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("%s: run failed: %v", name, err)
		}

		// Perf varies per run; the data body must not.
		var buf bytes.Buffer
		report.Render(&buf, result.Cities, result.Summary, nil)

		if want == "" {
			want = buf.String()
			continue
		}
		if buf.String() != want {
			t.Errorf("%s: report body diverged from sequential baseline", name)
		}
	}

	if want == "" {
		t.Fatal("no report rendered")
	}

	// Spot-check the expected rankings.
	for _, fragment := range []string{
		"TOP 10 HOTTEST CITIES",
		"TOP 10 COLDEST CITIES",
		"TOP 10 WETTEST CITIES",
		"Cities processed:     6",
		"Records processed:    18",
	} {
		if !bytes.Contains([]byte(want), []byte(fragment)) {
			t.Errorf("report missing %q", fragment)
		}
	}
}

// TestPersistedRunsAccumulate checks that repeated runs against the same
// database build up a history.
func TestPersistedRunsAccumulate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	for i := 0; i < 3; i++ {
		cfg := engine.Config{
			DataDir:   dir,
			MaxCities: engine.DefaultMaxCities,
			Backend:   "sequential",
			DBPath:    dbPath,
		}
		if _, err := engine.Run(context.Background(), cfg); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	records, err := engine.LoadRuns(dbPath)
	if err != nil {
		t.Fatalf("LoadRuns failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d run records, want 3", len(records))
	}
}

// writeFixture creates six city files with distinct climates: three rows
// each, temperatures stepped per city, one city missing all temperatures.
func writeFixture(t *testing.T, dir string) {
	t.Helper()

	header := "STATION,NAME,DATE,ELEMENT,TAVG,TMIN,TMAX,PRCP\n"
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("City_%d.csv", i)

		var rows string
		for day := 1; day <= 3; day++ {
			temp := fmt.Sprintf("%d.0", i*10+day)
			if i == 5 {
				temp = "" // station without a thermometer
			}
			rows += fmt.Sprintf("GEN,X,2021-0%d-01,DLY,%s,,,%d.5\n", day, temp, i)
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(header+rows), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
}
