package model

import (
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the lifecycle state of a recorded game
type GameStatus string

const (
	GameStatusPending   GameStatus = "pending"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// Valid reports whether the status is one of the known values
func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusPending, GameStatusCompleted, GameStatusCancelled:
		return true
	}
	return false
}

// Game is a recorded pickup game result.
// Team rosters hold player identifiers as given; they are not checked
// against the player collection.
type Game struct {
	ID           GameID     `json:"id"`
	Date         time.Time  `json:"date"`
	Team1Players []string   `json:"team1_players"`
	Team2Players []string   `json:"team2_players"`
	Team1Score   int        `json:"team1_score"`
	Team2Score   int        `json:"team2_score"`
	Status       GameStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.Team1Players = slices.Clone(g.Team1Players)
	c.Team2Players = slices.Clone(g.Team2Players)
	return &c
}

// NewGame holds the caller-supplied fields for recording a game
type NewGame struct {
	Team1Players []string
	Team2Players []string
	Team1Score   int
	Team2Score   int
}
