package weather

import "math"

// NoTempSentinel is the ranking key used for cities without any usable
// temperature data. Such cities sort below every real average.
const NoTempSentinel = -999.0

// CityStats accumulates the statistics for one city's input file.
//
// TempMin and TempMax start at the +/-MaxFloat64 sentinels and are
// meaningless while TempCount == 0; callers must check TempCount before
// reading them.
type CityStats struct {
	Name             string      `json:"name"`
	TempSum          float64     `json:"temp_sum"`
	TempMin          float64     `json:"temp_min"`
	TempMax          float64     `json:"temp_max"`
	PrecipSum        float64     `json:"precip_sum"`
	TempCount        int         `json:"temp_count"`
	PrecipCount      int         `json:"precip_count"`
	RecordCount      int         `json:"record_count"`
	MonthlyTempSum   [12]float64 `json:"monthly_temp_sum"`
	MonthlyTempCount [12]int     `json:"monthly_temp_count"`
}

// NewCityStats returns an empty accumulator for the named city.
func NewCityStats(name string) CityStats {
	return CityStats{
		Name:    name,
		TempMin: math.MaxFloat64,
		TempMax: -math.MaxFloat64,
	}
}

// AvgTemp returns the mean temperature, or NoTempSentinel when the city has
// no usable temperature data.
func (c *CityStats) AvgTemp() float64 {
	if c.TempCount == 0 {
		return NoTempSentinel
	}
	return c.TempSum / float64(c.TempCount)
}

// HasTemp reports whether the city recorded at least one temperature value.
func (c *CityStats) HasTemp() bool {
	return c.TempCount > 0
}

// Summary holds the cross-city totals folded over a merged collection.
type Summary struct {
	CityCount    int     `json:"city_count"`
	TotalRecords int64   `json:"total_records"`
	TempSum      float64 `json:"temp_sum"`
	TempCount    int64   `json:"temp_count"`
}

// GlobalAvgTemp returns the global mean temperature, or 0 when no
// temperature values were recorded anywhere.
func (s Summary) GlobalAvgTemp() float64 {
	if s.TempCount == 0 {
		return 0
	}
	return s.TempSum / float64(s.TempCount)
}

// Merge concatenates per-worker result lists into one flat collection. The
// lists are appended in the order given; workers never share records, so no
// deduplication is needed.
func Merge(lists ...[]CityStats) []CityStats {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make([]CityStats, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}

	return merged
}

// Summarize folds record and temperature totals across every city. The fold
// is commutative and associative, so the result does not depend on which
// backend or partition strategy produced the collection.
func Summarize(cities []CityStats) Summary {
	s := Summary{CityCount: len(cities)}
	for i := range cities {
		s.TotalRecords += int64(cities[i].RecordCount)
		s.TempSum += cities[i].TempSum
		s.TempCount += int64(cities[i].TempCount)
	}

	return s
}
