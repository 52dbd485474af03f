package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/weatherstats/internal/engine"
	"pkg.jsn.cam/weatherstats/internal/report"
	"pkg.jsn.cam/weatherstats/internal/runner"
	"pkg.jsn.cam/weatherstats/pkg/partition"
)

var (
	maxCities int
	workers   int
	backend   string
	schedule  string
	chunkSize int
	dist      string
	gatherArg string
	dbPath    string
	output    string
	progress  bool
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weatherstats <data-directory>",
		Short: "Aggregate per-city weather CSV files into rankings and summary statistics",
		Long: `weatherstats scans a directory of per-city weather CSV files, aggregates
temperature and precipitation per city, and prints top-10 rankings for the
hottest, coldest and wettest cities together with overall statistics.

The work runs on one of three interchangeable backends: sequential, a
shared-memory worker pool (static, dynamic or guided scheduling), or an
in-process cluster of workers with private state and a gather step. Every
backend produces the same report for the same inputs.`,
		Args: cobra.ExactArgs(1),
		RunE: runAggregation,
	}

	rootCmd.Flags().IntVar(&maxCities, "max-cities", engine.DefaultMaxCities, "Maximum number of city files to process")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker count (0 = number of CPUs)")
	rootCmd.Flags().StringVarP(&backend, "backend", "b", "sequential", "Execution backend: sequential, pool or cluster")
	rootCmd.Flags().StringVar(&schedule, "schedule", "dynamic", "Pool scheduling: static, dynamic or guided")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 1, "Pool chunk size")
	rootCmd.Flags().StringVar(&dist, "dist", "block", "Cluster task distribution: block or cyclic")
	rootCmd.Flags().StringVar(&gatherArg, "gather", "blocking", "Cluster gather mode: blocking or nonblocking")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Persist run records to this bbolt database")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to this file instead of stdout")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar while aggregating")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted run records",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&dbPath, "db", "", "bbolt database holding run records")
	runsCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(runsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAggregation(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	parsedSchedule, err := runner.ParseSchedule(schedule)
	if err != nil {
		return err
	}
	parsedDist, err := partition.ParseStrategy(dist)
	if err != nil {
		return err
	}
	parsedGather, err := runner.ParseGatherMode(gatherArg)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		DataDir:   args[0],
		MaxCities: maxCities,
		Backend:   backend,
		DBPath:    dbPath,
		Progress:  progress,
		Runner: runner.Config{
			Workers:      workers,
			Schedule:     parsedSchedule,
			ChunkSize:    chunkSize,
			Distribution: parsedDist,
			Gather:       parsedGather,
		},
	}

	log.Infof("[MAIN] weatherstats starting: dir=%s backend=%s workers=%d", cfg.DataDir, cfg.Backend, cfg.Runner.Workers)

	result, err := engine.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	report.Render(out, result.Cities, result.Summary, &report.Perf{
		Backend:          result.Backend,
		Workers:          result.Workers,
		Cities:           result.Summary.CityCount,
		Elapsed:          result.Elapsed,
		MaxWorkerElapsed: result.MaxWorkerElapsed,
		Latency:          result.Latency,
	})

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	records, err := engine.LoadRuns(dbPath)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Started", "Run ID", "Backend", "Workers", "Cities", "Records", "Elapsed"})

	for _, r := range records {
		table.Append([]string{
			r.StartedAt.Format(time.RFC3339),
			r.RunID,
			r.Backend,
			fmt.Sprintf("%d", r.Workers),
			humanize.Comma(int64(r.Summary.CityCount)),
			humanize.Comma(r.Summary.TotalRecords),
			fmt.Sprintf("%dms", r.ElapsedMs),
		})
	}
	table.Render()

	return nil
}
