// Package sqlite provides a SQLite-backed storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage"
	"github.com/mcoot/arenafc/internal/storage/sqlite/migrations"
)

// Store persists players and games in SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a file-backed store at path and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return open(db)
}

// OpenMemory opens a private in-memory store that lives until Close
func OpenMemory() (*Store, error) {
	dsn := fmt.Sprintf("file:arenafc-%s?mode=memory&cache=shared&_pragma=foreign_keys(ON)", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The database is dropped once its last connection closes
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return open(db)
}

func open(db *sql.DB) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate applies pending migrations and returns their names
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	return applyMigrations(ctx, s.db, migrations.FS)
}

// Migrations reports the state of every embedded migration
func (s *Store) Migrations(ctx context.Context) ([]Migration, error) {
	return migrationStatus(ctx, s.db, migrations.FS)
}

// VacuumInto writes a compacted copy of the database to path
func (s *Store) VacuumInto(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("vacuum into %s: %w", path, err)
	}
	return nil
}

// Player operations

func (s *Store) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, rating, created_at, updated_at
		   FROM players
		  ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	players := []model.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, rating, created_at, updated_at
		   FROM players
		  WHERE id = ?`, string(id))
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	return player, err
}

func (s *Store) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   rating = excluded.rating,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		string(player.ID),
		player.Name,
		player.Rating,
		toMillis(player.CreatedAt),
		toMillis(player.UpdatedAt),
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *Store) UpdatePlayer(ctx context.Context, player *model.Player) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET name = ?, rating = ?, updated_at = ? WHERE id = ?`,
		player.Name,
		player.Rating,
		toMillis(player.UpdatedAt),
		string(player.ID),
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		return fmt.Errorf("update player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Store) ClearPlayers(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players`)
	if err != nil {
		return 0, fmt.Errorf("clear players: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear players: %w", err)
	}
	return int(n), nil
}

// Game operations

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	team1, err := encodeRoster(game.Team1Players)
	if err != nil {
		return err
	}
	team2, err := encodeRoster(game.Team2Players)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, date, team1_players, team2_players, team1_score, team2_score, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   date = excluded.date,
		   team1_players = excluded.team1_players,
		   team2_players = excluded.team2_players,
		   team1_score = excluded.team1_score,
		   team2_score = excluded.team2_score,
		   status = excluded.status,
		   created_at = excluded.created_at`,
		string(game.ID),
		toMillis(game.Date),
		team1,
		team2,
		game.Team1Score,
		game.Team2Score,
		string(game.Status),
		toMillis(game.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *Store) ListGames(ctx context.Context) ([]model.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, team1_players, team2_players, team1_score, team2_score, status, created_at
		   FROM games
		  ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	games := []model.Game{}
	for rows.Next() {
		var (
			game         model.Game
			id, status   string
			team1, team2 string
			date, ctime  int64
		)
		if err := rows.Scan(&id, &date, &team1, &team2, &game.Team1Score, &game.Team2Score, &status, &ctime); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		game.ID = model.GameID(id)
		game.Status = model.GameStatus(status)
		game.Date = fromMillis(date)
		game.CreatedAt = fromMillis(ctime)
		if game.Team1Players, err = decodeRoster(team1); err != nil {
			return nil, fmt.Errorf("game %s: %w", id, err)
		}
		if game.Team2Players, err = decodeRoster(team2); err != nil {
			return nil, fmt.Errorf("game %s: %w", id, err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*model.Player, error) {
	var (
		player             model.Player
		id                 string
		createdAt, updated int64
	)
	if err := row.Scan(&id, &player.Name, &player.Rating, &createdAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	player.ID = model.PlayerID(id)
	player.CreatedAt = fromMillis(createdAt)
	player.UpdatedAt = fromMillis(updated)
	return &player, nil
}

func encodeRoster(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode roster: %w", err)
	}
	return string(data), nil
}

func decodeRoster(raw string) ([]string, error) {
	ids := []string{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return ids, nil
}

func isCheckViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}
