package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage"
	"github.com/mcoot/arenafc/internal/storage/storagetest"
)

type FileStoreSuite struct {
	storagetest.Suite
}

func TestFileStoreSuite(t *testing.T) {
	s := new(FileStoreSuite)
	s.NewStorage = func() storage.Storage {
		store, err := Open(filepath.Join(s.T().TempDir(), "arena.db"))
		s.Require().NoError(err)
		return store
	}
	suite.Run(t, s)
}

type MemoryStoreSuite struct {
	storagetest.Suite
}

func TestMemoryStoreSuite(t *testing.T) {
	s := new(MemoryStoreSuite)
	s.NewStorage = func() storage.Storage {
		store, err := OpenMemory()
		s.Require().NoError(err)
		return store
	}
	suite.Run(t, s)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	ctx := context.Background()

	first, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = first.Close() }()

	second, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	require.NoError(t, first.SavePlayer(ctx, &model.Player{ID: "p1", Name: "Alice", Rating: 4}))

	players, err := second.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arena.db")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SavePlayer(ctx, &model.Player{
		ID: "p1", Name: "Alice", Rating: 4.5, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	player, err := reopened.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", player.Name)
	assert.Equal(t, 4.5, player.Rating)
	assert.True(t, now.Equal(player.CreatedAt))
}

func TestRatingCheckConstraint(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	for _, r := range []float64{-0.5, 5.5, 1.25} {
		err := store.SavePlayer(ctx, &model.Player{ID: "p1", Name: "Alice", Rating: r})
		assert.ErrorIs(t, err, model.ErrValidation, "rating %v", r)
	}

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestGameStatusCheckConstraint(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.SaveGame(ctx, &model.Game{ID: "g1", Status: "abandoned"})
	assert.Error(t, err)
}

func TestNilRosterStoredAsEmpty(t *testing.T) {
	ctx := context.Background()
	store, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.SaveGame(ctx, &model.Game{ID: "g1", Status: model.GameStatusCompleted}))

	games, err := store.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, []string{}, games[0].Team1Players)
	assert.Equal(t, []string{}, games[0].Team2Players)
}

func TestVacuumInto(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(filepath.Join(dir, "arena.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.SavePlayer(ctx, &model.Player{ID: "p1", Name: "Alice", Rating: 3}))

	backupPath := filepath.Join(dir, "copy.db")
	require.NoError(t, store.VacuumInto(ctx, backupPath))

	copied, err := Open(backupPath)
	require.NoError(t, err)
	defer func() { _ = copied.Close() }()

	players, err := copied.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].Name)
}
