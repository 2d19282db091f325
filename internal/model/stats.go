package model

import (
	"encoding/json"
	"strconv"
)

// RatingCounts maps each rating level to the number of players holding it
type RatingCounts map[float64]int

// MarshalJSON renders levels as "0", "0.5", ... "5"
func (c RatingCounts) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(c))
	for level, count := range c {
		out[strconv.FormatFloat(level, 'f', -1, 64)] = count
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the string-keyed form written by MarshalJSON
func (c *RatingCounts) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(RatingCounts, len(raw))
	for key, count := range raw {
		level, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return err
		}
		out[level] = count
	}
	*c = out
	return nil
}

// Stats aggregates the player collection
type Stats struct {
	Total         int          `json:"total"`
	ByRating      RatingCounts `json:"byRating"`
	AverageRating float64      `json:"averageRating"`
}
