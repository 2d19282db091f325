// Package storagetest holds the behavioural suite every storage backend runs.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage"
)

// Suite exercises a storage.Storage implementation.
// Backends embed it and set NewStorage.
type Suite struct {
	suite.Suite

	// NewStorage returns a fresh, empty backend for each test
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func (s *Suite) player(id, name string, rating float64) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		Name:      name,
		Rating:    rating,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func (s *Suite) game(id string, offset time.Duration) *model.Game {
	date := baseTime.Add(offset)
	return &model.Game{
		ID:           model.GameID(id),
		Date:         date,
		Team1Players: []string{"p1", "p2"},
		Team2Players: []string{"p3", "p4"},
		Team1Score:   3,
		Team2Score:   1,
		Status:       model.GameStatusCompleted,
		CreatedAt:    date,
	}
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "Alice", 4.5)

	err := s.Storage.SavePlayer(s.Ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.Name)
	s.Equal(4.5, retrieved.Rating)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
	s.True(player.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestSavePlayerReplacesExisting() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("player-1", "Alice", 4.5))

	updated := s.player("player-1", "Alicia", 3.5)
	updated.UpdatedAt = baseTime.Add(time.Hour)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, updated))

	retrieved, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.Name)
	s.Equal(3.5, retrieved.Rating)
	s.True(baseTime.Equal(retrieved.CreatedAt))
	s.True(updated.UpdatedAt.Equal(retrieved.UpdatedAt))

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *Suite) TestGetPlayerReturnsCopy() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("player-1", "Alice", 4.5))

	first, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	first.Name = "Mallory"

	second, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", second.Name)
}

func (s *Suite) TestSavePlayerCopiesInput() {
	player := s.player("player-1", "Alice", 4.5)
	_ = s.Storage.SavePlayer(s.Ctx, player)
	player.Name = "Mallory"

	retrieved, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Name)
}

func (s *Suite) TestUpdatePlayer() {
	original := s.player("player-1", "Alice", 4.5)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, original))

	changed := original.Clone()
	changed.Name = "Alicia"
	changed.Rating = 2
	changed.UpdatedAt = original.UpdatedAt.Add(time.Minute)
	s.Require().NoError(s.Storage.UpdatePlayer(s.Ctx, changed))

	got, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alicia", got.Name)
	s.Equal(2.0, got.Rating)
	s.True(original.CreatedAt.Equal(got.CreatedAt))
	s.True(changed.UpdatedAt.Equal(got.UpdatedAt))
}

func (s *Suite) TestUpdatePlayerNotFoundDoesNotCreate() {
	err := s.Storage.UpdatePlayer(s.Ctx, s.player("ghost", "Ghost", 3))
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.Storage.GetPlayer(s.Ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestUpdateAfterDeleteStaysDeleted() {
	p := s.player("player-1", "Alice", 4.5)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))
	s.Require().NoError(s.Storage.DeletePlayer(s.Ctx, "player-1"))

	s.ErrorIs(s.Storage.UpdatePlayer(s.Ctx, p), model.ErrPlayerNotFound)

	_, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("player-1", "Alice", 4.5))

	err := s.Storage.DeletePlayer(s.Ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetPlayer(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayerNotFound() {
	err := s.Storage.DeletePlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestListPlayersEmpty() {
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestListPlayersOrderedByNameThenID() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("c", "Carol", 3))
	_ = s.Storage.SavePlayer(s.Ctx, s.player("b2", "Bob", 2))
	_ = s.Storage.SavePlayer(s.Ctx, s.player("a", "Alice", 5))
	_ = s.Storage.SavePlayer(s.Ctx, s.player("b1", "Bob", 1))

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 4)

	ids := make([]model.PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	s.Equal([]model.PlayerID{"a", "b1", "b2", "c"}, ids)
}

func (s *Suite) TestClearPlayers() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("a", "Alice", 5))
	_ = s.Storage.SavePlayer(s.Ctx, s.player("b", "Bob", 2))

	n, err := s.Storage.ClearPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Equal(2, n)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)

	n, err = s.Storage.ClearPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Equal(0, n)
}

// Game tests

func (s *Suite) TestSaveAndListGame() {
	game := s.game("game-1", 0)

	err := s.Storage.SaveGame(s.Ctx, game)
	s.Require().NoError(err)

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)

	g := games[0]
	s.Equal(game.ID, g.ID)
	s.Equal([]string{"p1", "p2"}, g.Team1Players)
	s.Equal([]string{"p3", "p4"}, g.Team2Players)
	s.Equal(3, g.Team1Score)
	s.Equal(1, g.Team2Score)
	s.Equal(model.GameStatusCompleted, g.Status)
	s.True(game.Date.Equal(g.Date))
	s.True(game.CreatedAt.Equal(g.CreatedAt))
}

func (s *Suite) TestListGamesEmpty() {
	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *Suite) TestListGamesMostRecentFirst() {
	_ = s.Storage.SaveGame(s.Ctx, s.game("old", 0))
	_ = s.Storage.SaveGame(s.Ctx, s.game("new", 2*time.Hour))
	_ = s.Storage.SaveGame(s.Ctx, s.game("mid", time.Hour))

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("new"), games[0].ID)
	s.Equal(model.GameID("mid"), games[1].ID)
	s.Equal(model.GameID("old"), games[2].ID)
}

func (s *Suite) TestGameRostersRoundTrip() {
	game := s.game("game-1", 0)
	game.Team1Players = []string{"z", "a", "a", "ünïcode \"quoted\""}
	game.Team2Players = []string{}

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal([]string{"z", "a", "a", "ünïcode \"quoted\""}, games[0].Team1Players)
	s.NotNil(games[0].Team2Players)
	s.Empty(games[0].Team2Players)
}

func (s *Suite) TestListGamesReturnsCopies() {
	_ = s.Storage.SaveGame(s.Ctx, s.game("game-1", 0))

	games, _ := s.Storage.ListGames(s.Ctx)
	games[0].Team1Players[0] = "mallory"

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Equal("p1", games[0].Team1Players[0])
}

func (s *Suite) TestClearPlayersKeepsGames() {
	_ = s.Storage.SavePlayer(s.Ctx, s.player("p1", "Alice", 5))
	_ = s.Storage.SaveGame(s.Ctx, s.game("game-1", 0))

	_, err := s.Storage.ClearPlayers(s.Ctx)
	s.Require().NoError(err)

	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}
