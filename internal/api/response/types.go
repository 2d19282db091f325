package response

import (
	"slices"
	"time"

	"github.com/mcoot/arenafc/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i := range players {
		out[i] = PlayerFromModel(&players[i])
	}
	return out
}

// DeletePlayerResponse is returned after removing a player
type DeletePlayerResponse struct {
	Message string `json:"message"`
	Player  Player `json:"player"`
}

// Stats is the roster summary
type Stats = model.Stats

// Game represents a recorded game in API responses
type Game struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Team1Players []string  `json:"team1_players"`
	Team2Players []string  `json:"team2_players"`
	Team1Score   int       `json:"team1_score"`
	Team2Score   int       `json:"team2_score"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	team1 := slices.Clone(g.Team1Players)
	if team1 == nil {
		team1 = []string{}
	}
	team2 := slices.Clone(g.Team2Players)
	if team2 == nil {
		team2 = []string{}
	}
	return Game{
		ID:           string(g.ID),
		Date:         g.Date,
		Team1Players: team1,
		Team2Players: team2,
		Team1Score:   g.Team1Score,
		Team2Score:   g.Team2Score,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []model.Game) []Game {
	out := make([]Game, len(games))
	for i := range games {
		out[i] = GameFromModel(&games[i])
	}
	return out
}

// CreateGameResponse is returned after recording a game
type CreateGameResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
}
