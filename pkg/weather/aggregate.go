package weather

import (
	"bufio"
	"os"
)

// Column indices of the city CSV layout. Rows are read positionally, not by
// header name.
const (
	fieldDate    = 2 // YYYY-MM-DD
	fieldAvgTemp = 4 // average temperature, degrees C
	fieldPrecip  = 7 // precipitation, mm
)

// ProcessFile reads one city CSV and returns its accumulated statistics. The
// first line is always discarded as a header. A file that cannot be opened
// (or that holds only a header) contributes zero-valued statistics; the run
// continues either way.
func ProcessFile(path, city string) CityStats {
	stats := NewCityStats(city)

	f, err := os.Open(path)
	if err != nil {
		return stats
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Skip header
	if !sc.Scan() {
		return stats
	}

	for sc.Scan() {
		stats.AddRow(sc.Text())
	}

	return stats
}

// AddRow folds a single data row into the accumulator. Every row counts
// toward RecordCount; each metric counts only when its field is present.
// Rows with an invalid month still contribute to the overall temperature
// totals but are excluded from the monthly buckets.
func (c *CityStats) AddRow(line string) {
	c.RecordCount++

	month := Month(Field(line, fieldDate))

	if raw := Field(line, fieldAvgTemp); raw != "" {
		temp := parseMetric(raw)
		c.TempSum += temp
		c.TempCount++

		if temp < c.TempMin {
			c.TempMin = temp
		}
		if temp > c.TempMax {
			c.TempMax = temp
		}

		if month != InvalidMonth {
			c.MonthlyTempSum[month] += temp
			c.MonthlyTempCount[month]++
		}
	}

	if raw := Field(line, fieldPrecip); raw != "" {
		c.PrecipSum += parseMetric(raw)
		c.PrecipCount++
	}
}
