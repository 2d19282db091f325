package request

import (
	"bytes"
	"encoding/json"
)

// PlayerRequest is the request body for creating or updating a player
type PlayerRequest struct {
	Name string `json:"name"`
	// Rating is kept raw so non-numeric values reach validation intact
	Rating json.RawMessage `json:"rating"`
}

// RatingValue decodes the raw rating, keeping numbers as json.Number.
// A missing rating is nil.
func (r PlayerRequest) RatingValue() any {
	if len(r.Rating) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Rating))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// CreateGameRequest is the request body for recording a game
type CreateGameRequest struct {
	Team1Players []string `json:"team1Players"`
	Team2Players []string `json:"team2Players"`
	Team1Score   int      `json:"team1Score"`
	Team2Score   int      `json:"team2Score"`
}
