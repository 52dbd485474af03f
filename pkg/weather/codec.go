package weather

import "encoding/json"

// EncodeStats serializes a worker's partial result list into the stable
// record encoding used by gathers and run persistence. The min/max sentinels
// are finite (+/-MaxFloat64), so every accumulator state round-trips.
func EncodeStats(stats []CityStats) ([]byte, error) {
	return json.Marshal(stats)
}

// DecodeStats is the inverse of EncodeStats.
func DecodeStats(data []byte) ([]CityStats, error) {
	var stats []CityStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}
