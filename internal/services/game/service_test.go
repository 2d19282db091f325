package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/arenafc/internal/dependencies/mocks"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage/memory"
	"github.com/mcoot/arenafc/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	s.service = New(s.storage, s.clock, s.ids, testutil.NopLogger())
	s.ctx = context.Background()
}

// Create tests

func (s *ServiceSuite) TestCreateRoundTrip() {
	s.ids.Queue("game-1")

	id, err := s.service.Create(s.ctx, model.NewGame{
		Team1Players: []string{"p1", "p2"},
		Team2Players: []string{"p3", "p4"},
		Team1Score:   3,
		Team2Score:   1,
	})
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), id)

	games := s.service.List(s.ctx)
	s.Require().Len(games, 1)

	g := games[0]
	s.Equal(id, g.ID)
	s.Equal([]string{"p1", "p2"}, g.Team1Players)
	s.Equal([]string{"p3", "p4"}, g.Team2Players)
	s.Equal(3, g.Team1Score)
	s.Equal(1, g.Team2Score)
	s.Equal(model.GameStatusCompleted, g.Status)
	s.Equal(s.clock.Now(), g.Date)
	s.Equal(g.Date, g.CreatedAt)
}

func (s *ServiceSuite) TestCreateDefaultsScoresToZero() {
	_, err := s.service.Create(s.ctx, model.NewGame{
		Team1Players: []string{"p1"},
		Team2Players: []string{"p2"},
	})
	s.Require().NoError(err)

	games := s.service.List(s.ctx)
	s.Require().Len(games, 1)
	s.Equal(0, games[0].Team1Score)
	s.Equal(0, games[0].Team2Score)
}

func (s *ServiceSuite) TestCreateAcceptsEmptyRosters() {
	_, err := s.service.Create(s.ctx, model.NewGame{
		Team1Players: []string{},
		Team2Players: []string{},
	})
	s.NoError(err)
}

func (s *ServiceSuite) TestCreateRejectsMissingRosters() {
	_, err := s.service.Create(s.ctx, model.NewGame{Team1Players: []string{"p1"}})
	s.ErrorIs(err, model.ErrInvalidTeams)
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.service.Create(s.ctx, model.NewGame{Team2Players: []string{"p1"}})
	s.ErrorIs(err, model.ErrInvalidTeams)

	s.Empty(s.service.List(s.ctx))
}

func (s *ServiceSuite) TestCreateCopiesRosters() {
	team1 := []string{"p1", "p2"}
	_, _ = s.service.Create(s.ctx, model.NewGame{Team1Players: team1, Team2Players: []string{"p3"}})
	team1[0] = "mallory"

	games := s.service.List(s.ctx)
	s.Equal("p1", games[0].Team1Players[0])
}

func (s *ServiceSuite) TestCreateDoesNotCheckPlayerIDs() {
	_, err := s.service.Create(s.ctx, model.NewGame{
		Team1Players: []string{"nobody", "nobody"},
		Team2Players: []string{"ghost"},
	})
	s.NoError(err)
}

func (s *ServiceSuite) TestCreateBackendFault() {
	svc := New(failingStorage{Storage: s.storage}, s.clock, s.ids, testutil.NopLogger())

	_, err := svc.Create(s.ctx, model.NewGame{Team1Players: []string{}, Team2Players: []string{}})
	s.ErrorIs(err, model.ErrStorage)
}

// List tests

func (s *ServiceSuite) TestListMostRecentFirst() {
	s.ids.Queue("first", "second", "third")
	for range 3 {
		_, _ = s.service.Create(s.ctx, model.NewGame{Team1Players: []string{}, Team2Players: []string{}})
		s.clock.Advance(time.Hour)
	}

	games := s.service.List(s.ctx)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("third"), games[0].ID)
	s.Equal(model.GameID("second"), games[1].ID)
	s.Equal(model.GameID("first"), games[2].ID)
}

func (s *ServiceSuite) TestListReturnsEmptyOnBackendFault() {
	svc := New(failingStorage{Storage: s.storage}, s.clock, s.ids, testutil.NopLogger())

	games := svc.List(s.ctx)
	s.NotNil(games)
	s.Empty(games)
}

// failingStorage fails every game operation
type failingStorage struct {
	*memory.Storage
}

var errBackend = errors.New("backend down")

func (f failingStorage) SaveGame(ctx context.Context, game *model.Game) error {
	return errBackend
}

func (f failingStorage) ListGames(ctx context.Context) ([]model.Game, error) {
	return nil, errBackend
}
