package storage

import (
	"cmp"
	"slices"

	"github.com/mcoot/arenafc/internal/model"
)

// SortPlayers orders players by name, breaking ties by id
func SortPlayers(players []model.Player) {
	slices.SortStableFunc(players, func(a, b model.Player) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortGames orders games most recent first, breaking ties by id
func SortGames(games []model.Game) {
	slices.SortStableFunc(games, func(a, b model.Game) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
