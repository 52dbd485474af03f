package weather

import (
	"strconv"
	"strings"
)

// InvalidMonth is returned by Month for dates that are too short or whose
// month falls outside the calendar.
const InvalidMonth = -1

// Field returns the zero-based column of a comma-separated line. A line with
// fewer delimiters than requested yields "", which downstream treats as an
// absent metric rather than an error. The returned value is a substring of
// the input; no copy is made.
func Field(line string, index int) string {
	for ; index > 0; index-- {
		i := strings.IndexByte(line, ',')
		if i < 0 {
			return ""
		}
		line = line[i+1:]
	}

	if i := strings.IndexByte(line, ','); i >= 0 {
		line = line[:i]
	}

	return strings.TrimRight(line, "\r")
}

// Month extracts a zero-indexed month from a YYYY-MM-DD date string. It
// returns InvalidMonth when the string is shorter than 7 characters or the
// parsed month falls outside [0,11].
func Month(date string) int {
	if len(date) < 7 {
		return InvalidMonth
	}

	m, err := strconv.Atoi(date[5:7])
	if err != nil {
		return InvalidMonth
	}

	m--
	if m < 0 || m > 11 {
		return InvalidMonth
	}

	return m
}

// parseMetric follows atof semantics: a non-empty field that fails to parse
// as a number yields 0.0 and is still counted as a present metric.
func parseMetric(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}

	return v
}
