// Package player manages the rated player roster.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/arenafc/internal/dependencies/clock"
	"github.com/mcoot/arenafc/internal/dependencies/ids"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/rating"
	"github.com/mcoot/arenafc/internal/storage"
)

// Service validates and persists players
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a new player Service
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

// List returns every player ordered by name.
// Backend faults are logged and yield an empty list.
func (s *Service) List(ctx context.Context) []model.Player {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		s.logger.Error("failed to list players",
			slog.String("error", err.Error()),
		)
		return []model.Player{}
	}
	return players
}

// Get retrieves a player by ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, s.storageFault("get player", err, slog.String("player_id", string(id)))
	}
	return player, nil
}

// Create validates and stores a new player.
// The name is trimmed; rating must be one of the eleven half-point levels.
func (s *Service) Create(ctx context.Context, name string, value any) (*model.Player, error) {
	name, r, err := validate(name, value)
	if err != nil {
		return nil, err
	}

	now := clock.Stamp(s.clock)
	player := &model.Player{
		ID:        model.PlayerID(s.ids.NewID()),
		Name:      name,
		Rating:    r,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, s.storageFault("create player", err, slog.String("player_id", string(player.ID)))
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.Float64("rating", player.Rating),
	)

	return player, nil
}

// Update replaces a player's name and rating.
// Input is validated before the player is looked up.
func (s *Service) Update(ctx context.Context, id model.PlayerID, name string, value any) (*model.Player, error) {
	name, r, err := validate(name, value)
	if err != nil {
		return nil, err
	}

	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	player.Name = name
	player.Rating = r
	player.UpdatedAt = clock.Stamp(s.clock)

	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, s.storageFault("update player", err, slog.String("player_id", string(id)))
	}

	s.logger.Info("player updated",
		slog.String("player_id", string(id)),
		slog.Float64("rating", player.Rating),
	)

	return player, nil
}

// Delete removes a player and returns the removed record.
// An unknown ID returns (nil, nil).
func (s *Service) Delete(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := s.Get(ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, s.storageFault("delete player", err, slog.String("player_id", string(id)))
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))

	return player, nil
}

// Stats aggregates the roster: total count, count per rating level
// (all eleven levels present) and the mean rating to two places.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return model.Stats{}, s.storageFault("player stats", err)
	}

	byRating := make(model.RatingCounts, len(rating.Levels()))
	for _, level := range rating.Levels() {
		byRating[level] = 0
	}

	ratings := make([]float64, len(players))
	for i, p := range players {
		ratings[i] = p.Rating
		byRating[rating.Normalize(p.Rating)]++
	}

	return model.Stats{
		Total:         len(players),
		ByRating:      byRating,
		AverageRating: rating.Average(ratings),
	}, nil
}

// Clear removes every player and returns how many were removed
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.storage.ClearPlayers(ctx)
	if err != nil {
		return 0, s.storageFault("clear players", err)
	}

	s.logger.Warn("players cleared", slog.Int("count", n))

	return n, nil
}

func validate(name string, value any) (string, float64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, model.ErrInvalidName
	}
	r, ok := rating.Float(value)
	if !ok {
		return "", 0, model.ErrInvalidRating
	}
	return name, r, nil
}

func (s *Service) storageFault(op string, err error, attrs ...any) error {
	if errors.Is(err, model.ErrValidation) {
		return err
	}
	s.logger.Error("failed to "+op, append(attrs, slog.String("error", err.Error()))...)
	return fmt.Errorf("%w: %s: %w", model.ErrStorage, op, err)
}
