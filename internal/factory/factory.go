package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/arenafc/internal/dependencies/clock"
	"github.com/mcoot/arenafc/internal/dependencies/ids"
	"github.com/mcoot/arenafc/internal/services/game"
	"github.com/mcoot/arenafc/internal/services/player"
	"github.com/mcoot/arenafc/internal/storage"
	"github.com/mcoot/arenafc/internal/storage/memory"
	redisstorage "github.com/mcoot/arenafc/internal/storage/redis"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory       = "memory"
	StorageTypeSQLite       = "sqlite"
	StorageTypeSQLiteMemory = "sqlite-memory"
	StorageTypeRedis        = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	PlayerService *player.Service
	GameService   *game.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := NewStorage(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("storage ready", slog.String("storage_type", storageType(cfg)))

	return newWithDependencies(store, clock.New(), ids.New(), logger), nil
}

// NewStorage opens the backend selected by cfg.StorageType
func NewStorage(cfg Config) (storage.Storage, error) {
	switch storageType(cfg) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.Open(cfg.SQLitePath)
	case StorageTypeSQLiteMemory:
		return sqlite.OpenMemory()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be one of memory, sqlite, sqlite-memory, redis", cfg.StorageType)
	}
}

func storageType(cfg Config) string {
	if cfg.StorageType == "" {
		return StorageTypeMemory
	}
	return cfg.StorageType
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idGen ids.Generator, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		IDs:           idGen,
		PlayerService: player.New(store, clk, idGen, logger.With(slog.String("service", "player"))),
		GameService:   game.New(store, clk, idGen, logger.With(slog.String("service", "game"))),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
