package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats(name string, temps []float64, records int) CityStats {
	c := NewCityStats(name)
	for _, temp := range temps {
		c.TempSum += temp
		c.TempCount++
		c.TempMin = math.Min(c.TempMin, temp)
		c.TempMax = math.Max(c.TempMax, temp)
	}
	c.RecordCount = records

	return c
}

func TestMergeConcatenates(t *testing.T) {
	a := []CityStats{sampleStats("A", []float64{1}, 1)}
	b := []CityStats{sampleStats("B", []float64{2}, 2), sampleStats("C", nil, 3)}

	merged := Merge(a, b)
	require.Len(t, merged, 3)
	assert.Equal(t, "A", merged[0].Name)
	assert.Equal(t, "B", merged[1].Name)
	assert.Equal(t, "C", merged[2].Name)

	// Empty and nil worker lists are fine.
	assert.Len(t, Merge(nil, a, []CityStats{}), 1)
	assert.Empty(t, Merge())
}

func TestSummarizeFold(t *testing.T) {
	cities := []CityStats{
		sampleStats("A", []float64{10, 20}, 4),
		sampleStats("B", []float64{-5}, 2),
		sampleStats("C", nil, 7), // no temperature data, records still count
	}

	s := Summarize(cities)
	assert.Equal(t, 3, s.CityCount)
	assert.Equal(t, int64(13), s.TotalRecords)
	assert.Equal(t, int64(3), s.TempCount)
	assert.InDelta(t, 25.0, s.TempSum, 1e-9)
	assert.InDelta(t, 25.0/3.0, s.GlobalAvgTemp(), 1e-9)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a := sampleStats("A", []float64{1.25, 3.5}, 2)
	b := sampleStats("B", []float64{-2.75}, 5)
	c := sampleStats("C", []float64{9}, 1)

	fwd := Summarize([]CityStats{a, b, c})
	rev := Summarize([]CityStats{c, b, a})

	assert.Equal(t, fwd.TotalRecords, rev.TotalRecords)
	assert.Equal(t, fwd.TempCount, rev.TempCount)
	assert.InDelta(t, fwd.TempSum, rev.TempSum, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.CityCount)
	assert.Zero(t, s.TotalRecords)
	assert.Zero(t, s.GlobalAvgTemp())
}

func TestEncodeDecodeStatsRoundTrip(t *testing.T) {
	in := []CityStats{
		sampleStats("Rainy Port", []float64{12.5, 14.0}, 3),
		NewCityStats("No Data"), // sentinel min/max must survive encoding
	}
	in[0].PrecipSum = 19.5
	in[0].PrecipCount = 2
	in[0].MonthlyTempSum[3] = 26.5
	in[0].MonthlyTempCount[3] = 2

	buf, err := EncodeStats(in)
	require.NoError(t, err)

	out, err := DecodeStats(buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
