// Package maintenance backs up and restores the SQLite database file.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/arenafc/internal/dependencies/clock"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
)

const (
	backupPrefix = "backup_"
	backupSuffix = ".db"
	stampLayout  = "2006-01-02T15-04-05"
)

// Errors
var (
	ErrDatabaseNotFound = errors.New("database file not found")
	ErrBackupNotFound   = errors.New("backup file not found")
)

// BackupFile describes one backup on disk
type BackupFile struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
	Size    int64     `json:"size"`
}

// Config locates the database and its backups
type Config struct {
	DBPath    string
	BackupDir string
}

// DefaultConfig returns the conventional locations
func DefaultConfig() Config {
	return Config{
		DBPath:    "arena_fc.db",
		BackupDir: "backups",
	}
}

// Service performs database maintenance
type Service struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new maintenance Service
func New(cfg Config, clock clock.Clock, logger *slog.Logger) *Service {
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultConfig().DBPath
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = DefaultConfig().BackupDir
	}
	return &Service{
		cfg:    cfg,
		clock:  clock,
		logger: logger,
	}
}

// Backup writes a consistent copy of the database to
// <BackupDir>/backup_<timestamp>.db.
func (s *Service) Backup(ctx context.Context) (*BackupFile, error) {
	if _, err := os.Stat(s.cfg.DBPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, s.cfg.DBPath)
		}
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	created := clock.Stamp(s.clock)
	path := filepath.Join(s.cfg.BackupDir, backupName(created))

	store, err := sqlite.Open(s.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.VacuumInto(ctx, path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	s.logger.Info("backup created",
		slog.String("path", path),
		slog.Int64("size", info.Size()),
	)

	return &BackupFile{
		Name:    filepath.Base(path),
		Path:    path,
		Created: created,
		Size:    info.Size(),
	}, nil
}

// ListBackups returns the backups in BackupDir, newest first.
// A missing directory yields an empty list.
func (s *Service) ListBackups() ([]BackupFile, error) {
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupFile{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	backups := []BackupFile{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		created, ok := parseBackupName(name)
		if !ok {
			created = info.ModTime().UTC()
		}
		backups = append(backups, BackupFile{
			Name:    name,
			Path:    filepath.Join(s.cfg.BackupDir, name),
			Created: created,
			Size:    info.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b BackupFile) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return backups, nil
}

// Restore replaces the database with the backup at backupPath.
// The current database, if any, is backed up first; that safety
// backup is returned.
func (s *Service) Restore(ctx context.Context, backupPath string) (*BackupFile, error) {
	if _, err := os.Stat(backupPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, backupPath)
		}
		return nil, err
	}

	var safety *BackupFile
	if _, err := os.Stat(s.cfg.DBPath); err == nil {
		safety, err = s.Backup(ctx)
		if err != nil {
			return nil, fmt.Errorf("back up current database: %w", err)
		}
	}

	if err := copyFile(backupPath, s.cfg.DBPath); err != nil {
		return nil, err
	}

	// Stale WAL pages would be replayed over the restored file
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(s.cfg.DBPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	s.logger.Info("database restored", slog.String("from", backupPath))

	return safety, nil
}

func backupName(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%s-%03dZ%s", backupPrefix, t.Format(stampLayout), t.Nanosecond()/int(time.Millisecond), backupSuffix)
}

func parseBackupName(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
	stamp = strings.TrimSuffix(stamp, "Z")
	if len(stamp) < len(stampLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(stampLayout, stamp[:len(stampLayout)])
	if err != nil {
		return time.Time{}, false
	}
	if rest := strings.TrimPrefix(stamp[len(stampLayout):], "-"); rest != "" {
		ms, err := strconv.Atoi(rest)
		if err != nil {
			return time.Time{}, false
		}
		t = t.Add(time.Duration(ms) * time.Millisecond)
	}
	return t, true
}

// copyFile writes src to dst through a temp file renamed into place
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".restore-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
