// Package report ranks aggregated city records and renders the final
// fixed-width report. Rendering is pure: the same inputs always produce
// byte-identical output.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/olekukonko/tablewriter"

	"pkg.jsn.cam/weatherstats/pkg/weather"
)

// TopN is how many cities each ranking shows.
const TopN = 10

// Hottest returns up to n cities by descending average temperature.
// Cities with no temperature readings are ineligible. Ties keep their
// input order.
func Hottest(cities []weather.CityStats, n int) []weather.CityStats {
	eligible := withTemps(cities)
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].AvgTemp() > eligible[j].AvgTemp()
	})
	return top(eligible, n)
}

// Coldest returns up to n cities by ascending average temperature, with
// the same eligibility and tie rules as Hottest.
func Coldest(cities []weather.CityStats, n int) []weather.CityStats {
	eligible := withTemps(cities)
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].AvgTemp() < eligible[j].AvgTemp()
	})
	return top(eligible, n)
}

// Wettest returns up to n cities by descending total precipitation.
// Every city is eligible; a city with no precipitation readings simply
// ranks with zero.
func Wettest(cities []weather.CityStats, n int) []weather.CityStats {
	ranked := make([]weather.CityStats, len(cities))
	copy(ranked, cities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PrecipSum > ranked[j].PrecipSum
	})
	return top(ranked, n)
}

func withTemps(cities []weather.CityStats) []weather.CityStats {
	eligible := make([]weather.CityStats, 0, len(cities))
	for _, c := range cities {
		if c.HasTemp() {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

func top(cities []weather.CityStats, n int) []weather.CityStats {
	if len(cities) > n {
		return cities[:n]
	}
	return cities
}

// Perf carries the timing figures for the performance section.
type Perf struct {
	Backend          string
	Workers          int
	Cities           int
	Elapsed          time.Duration
	MaxWorkerElapsed time.Duration
	Latency          *tachymeter.Metrics
}

// Throughput returns cities processed per second of elapsed wall time.
func (p *Perf) Throughput() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Cities) / p.Elapsed.Seconds()
}

// Render writes the full report: the three rankings, the overall
// statistics and, when perf is non-nil, the performance section.
func Render(w io.Writer, cities []weather.CityStats, summary weather.Summary, perf *Perf) {
	renderTemps(w, "TOP 10 HOTTEST CITIES", Hottest(cities, TopN))
	renderTemps(w, "TOP 10 COLDEST CITIES", Coldest(cities, TopN))
	renderPrecip(w, "TOP 10 WETTEST CITIES", Wettest(cities, TopN))

	fmt.Fprintln(w, "========== OVERALL STATISTICS ==========")
	fmt.Fprintf(w, "Cities processed:     %s\n", humanize.Comma(int64(summary.CityCount)))
	fmt.Fprintf(w, "Records processed:    %s\n", humanize.Comma(summary.TotalRecords))
	if summary.TempCount > 0 {
		fmt.Fprintf(w, "Global avg temp:      %.2f\n", summary.GlobalAvgTemp())
	} else {
		fmt.Fprintln(w, "Global avg temp:      n/a")
	}
	fmt.Fprintln(w)

	if perf != nil {
		renderPerf(w, perf)
	}
}

func renderTemps(w io.Writer, title string, cities []weather.CityStats) {
	fmt.Fprintf(w, "========== %s ==========\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "City", "Avg Temp", "Min", "Max", "Records"})

	rows := make([][]string, 0, len(cities))
	for i, c := range cities {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			fmt.Sprintf("%.2f", c.AvgTemp()),
			fmt.Sprintf("%.1f", c.TempMin),
			fmt.Sprintf("%.1f", c.TempMax),
			humanize.Comma(int64(c.RecordCount)),
		})
	}
	table.AppendBulk(rows)
	table.Render()
	fmt.Fprintln(w)
}

func renderPrecip(w io.Writer, title string, cities []weather.CityStats) {
	fmt.Fprintf(w, "========== %s ==========\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "City", "Total Precip", "Rain Days", "Records"})

	rows := make([][]string, 0, len(cities))
	for i, c := range cities {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			fmt.Sprintf("%.1f", c.PrecipSum),
			humanize.Comma(int64(c.PrecipCount)),
			humanize.Comma(int64(c.RecordCount)),
		})
	}
	table.AppendBulk(rows)
	table.Render()
	fmt.Fprintln(w)
}

func renderPerf(w io.Writer, perf *Perf) {
	fmt.Fprintln(w, "========== PERFORMANCE ==========")
	fmt.Fprintf(w, "Backend:              %s\n", perf.Backend)
	fmt.Fprintf(w, "Workers:              %d\n", perf.Workers)
	fmt.Fprintf(w, "Elapsed:              %v\n", perf.Elapsed)
	fmt.Fprintf(w, "Throughput:           %.1f cities/sec\n", perf.Throughput())
	if perf.MaxWorkerElapsed > 0 {
		fmt.Fprintf(w, "Slowest worker:       %v\n", perf.MaxWorkerElapsed)
	}

	if perf.Latency != nil {
		fmt.Fprintf(w, "Per-file avg:         %v\n", perf.Latency.Time.Avg)
		fmt.Fprintf(w, "Per-file p50:         %v\n", perf.Latency.Time.P50)
		fmt.Fprintf(w, "Per-file p95:         %v\n", perf.Latency.Time.P95)
		fmt.Fprintf(w, "Per-file max:         %v\n", perf.Latency.Time.Max)
	}
	fmt.Fprintln(w)
}
