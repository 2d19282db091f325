// Package game records pickup game results.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/arenafc/internal/dependencies/clock"
	"github.com/mcoot/arenafc/internal/dependencies/ids"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage"
)

// Service records and lists games
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a new game Service
func New(
	storage storage.Storage,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Create records a completed game dated now and returns its ID.
// Rosters are opaque player identifiers and are not checked against
// the player roster.
func (s *Service) Create(ctx context.Context, in model.NewGame) (model.GameID, error) {
	if in.Team1Players == nil || in.Team2Players == nil {
		return "", model.ErrInvalidTeams
	}

	now := clock.Stamp(s.clock)
	game := &model.Game{
		ID:           model.GameID(s.ids.NewID()),
		Date:         now,
		Team1Players: slices.Clone(in.Team1Players),
		Team2Players: slices.Clone(in.Team2Players),
		Team1Score:   in.Team1Score,
		Team2Score:   in.Team2Score,
		Status:       model.GameStatusCompleted,
		CreatedAt:    now,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: create game: %w", model.ErrStorage, err)
	}

	s.logger.Info("game recorded",
		slog.String("game_id", string(game.ID)),
		slog.Int("team1_score", game.Team1Score),
		slog.Int("team2_score", game.Team2Score),
	)

	return game.ID, nil
}

// List returns every game, most recent first.
// Backend faults are logged and yield an empty list.
func (s *Service) List(ctx context.Context) []model.Game {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		s.logger.Error("failed to list games",
			slog.String("error", err.Error()),
		)
		return []model.Game{}
	}
	return games
}
