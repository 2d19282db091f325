package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// Player represents a rated pickup-game participant
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
