package storage

import (
	"context"

	"github.com/mcoot/arenafc/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations hand out copies: callers never hold references to stored records.
type Storage interface {
	// Player operations
	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	SavePlayer(ctx context.Context, player *model.Player) error
	// UpdatePlayer overwrites name, rating and updated_at of an existing
	// player only; ErrPlayerNotFound if it is absent.
	UpdatePlayer(ctx context.Context, player *model.Player) error
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ClearPlayers(ctx context.Context) (int, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	ListGames(ctx context.Context) ([]model.Game, error)

	Close() error
}
