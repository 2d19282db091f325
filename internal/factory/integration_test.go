package factory

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage"
	"github.com/mcoot/arenafc/internal/storage/memory"
	redisstorage "github.com/mcoot/arenafc/internal/storage/redis"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
)

type IntegrationSuite struct {
	suite.Suite
	newStorage func(t *testing.T) storage.Storage

	app *TestApp
	ctx context.Context
}

func TestIntegrationMemory(t *testing.T) {
	suite.Run(t, &IntegrationSuite{newStorage: func(*testing.T) storage.Storage {
		return memory.New()
	}})
}

func TestIntegrationSQLite(t *testing.T) {
	suite.Run(t, &IntegrationSuite{newStorage: func(t *testing.T) storage.Storage {
		store, err := sqlite.Open(filepath.Join(t.TempDir(), "arena.db"))
		require.NoError(t, err)
		return store
	}})
}

func TestIntegrationRedis(t *testing.T) {
	suite.Run(t, &IntegrationSuite{newStorage: func(t *testing.T) storage.Storage {
		mini := miniredis.RunT(t)
		cfg := redisstorage.DefaultConfig()
		cfg.URL = "redis://" + mini.Addr()
		store, err := redisstorage.New(cfg)
		require.NoError(t, err)
		return store
	}})
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestAppWithStorage(s.newStorage(s.T()))
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

// Test: player lifecycle from creation through deletion
func (s *IntegrationSuite) TestPlayerLifecycle() {
	svc := s.app.PlayerService

	// Step 1: create
	created, err := svc.Create(s.ctx, " Alice ", 4.5)
	s.Require().NoError(err)
	s.Equal("Alice", created.Name)
	s.Equal(created.CreatedAt, created.UpdatedAt)

	// Step 2: update later
	s.app.MockClock.Advance(time.Minute)
	updated, err := svc.Update(s.ctx, created.ID, "Alice", 3.5)
	s.Require().NoError(err)

	fetched, err := svc.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(3.5, fetched.Rating)
	s.True(created.CreatedAt.Equal(fetched.CreatedAt))
	s.True(updated.UpdatedAt.Equal(fetched.UpdatedAt))
	s.True(fetched.UpdatedAt.After(fetched.CreatedAt))

	// Step 3: delete
	deleted, err := svc.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(deleted)

	_, err = svc.Get(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	deleted, err = svc.Delete(s.ctx, created.ID)
	s.NoError(err)
	s.Nil(deleted)
}

func (s *IntegrationSuite) TestStatsAcrossBackends() {
	s.Require().NoError(s.app.SeedPlayers(map[string]float64{"A": 5, "B": 5, "C": 3.5}))

	stats, err := s.app.PlayerService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.ByRating[5])
	s.Equal(1, stats.ByRating[3.5])
	s.Equal(0, stats.ByRating[0])
	s.Equal(4.33, stats.AverageRating)
}

func (s *IntegrationSuite) TestListPlayersAlphabetical() {
	s.Require().NoError(s.app.SeedPlayers(map[string]float64{"Zed": 1, "Amy": 2, "Mo": 3}))

	players := s.app.PlayerService.List(s.ctx)
	s.Require().Len(players, 3)
	s.Equal("Amy", players[0].Name)
	s.Equal("Mo", players[1].Name)
	s.Equal("Zed", players[2].Name)
}

func (s *IntegrationSuite) TestGameRoundTrip() {
	id, err := s.app.GameService.Create(s.ctx, model.NewGame{
		Team1Players: []string{"p1", "p2"},
		Team2Players: []string{"p3", "p4"},
		Team1Score:   3,
		Team2Score:   1,
	})
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Hour)
	laterID, err := s.app.GameService.Create(s.ctx, model.NewGame{
		Team1Players: []string{"p1"},
		Team2Players: []string{"p2"},
	})
	s.Require().NoError(err)

	games := s.app.GameService.List(s.ctx)
	s.Require().Len(games, 2)
	s.Equal(laterID, games[0].ID)
	s.Equal(id, games[1].ID)
	s.Equal([]string{"p1", "p2"}, games[1].Team1Players)
	s.Equal([]string{"p3", "p4"}, games[1].Team2Players)
	s.Equal(model.GameStatusCompleted, games[1].Status)
}

func TestNewStorageTypes(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, app.Storage)
	require.NoError(t, app.Close())

	app, err = New(Config{StorageType: StorageTypeSQLiteMemory})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, app.Storage)
	require.NoError(t, app.Close())

	app, err = New(Config{StorageType: StorageTypeSQLite, SQLitePath: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, app.Storage)
	require.NoError(t, app.Close())
}

func TestNewStorageErrors(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeSQLite})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewLogsStorageReadyOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	app, err := New(Config{Logger: logger, StorageType: StorageTypeSQLiteMemory})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.Equal(t, 1, strings.Count(buf.String(), `"msg":"storage ready"`))
	assert.Contains(t, buf.String(), `"storage_type":"sqlite-memory"`)
}
