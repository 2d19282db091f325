package maintenance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/arenafc/internal/dependencies/mocks"
	"github.com/mcoot/arenafc/internal/model"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
	"github.com/mcoot/arenafc/internal/testutil"
)

type BackupSuite struct {
	suite.Suite
	dir     string
	cfg     Config
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestBackupSuite(t *testing.T) {
	suite.Run(t, new(BackupSuite))
}

func (s *BackupSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfg = Config{
		DBPath:    filepath.Join(s.dir, "arena_fc.db"),
		BackupDir: filepath.Join(s.dir, "backups"),
	}
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC))
	s.service = New(s.cfg, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *BackupSuite) seed(names ...string) {
	store, err := sqlite.Open(s.cfg.DBPath)
	s.Require().NoError(err)
	defer func() { _ = store.Close() }()

	_, err = store.ClearPlayers(s.ctx)
	s.Require().NoError(err)
	for _, name := range names {
		s.Require().NoError(store.SavePlayer(s.ctx, &model.Player{
			ID: model.PlayerID(name), Name: name, Rating: 3,
		}))
	}
}

func (s *BackupSuite) playerNames() []string {
	store, err := sqlite.Open(s.cfg.DBPath)
	s.Require().NoError(err)
	defer func() { _ = store.Close() }()

	players, err := store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}

// Backup tests

func (s *BackupSuite) TestBackupCreatesTimestampedCopy() {
	s.seed("Alice")

	backup, err := s.service.Backup(s.ctx)
	s.Require().NoError(err)

	s.Equal("backup_2026-01-12T12-00-00-000Z.db", backup.Name)
	s.Equal(filepath.Join(s.cfg.BackupDir, backup.Name), backup.Path)
	s.Positive(backup.Size)
	s.FileExists(backup.Path)

	copied, err := sqlite.Open(backup.Path)
	s.Require().NoError(err)
	defer func() { _ = copied.Close() }()
	players, err := copied.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *BackupSuite) TestBackupMissingDatabase() {
	_, err := s.service.Backup(s.ctx)
	s.ErrorIs(err, ErrDatabaseNotFound)
	s.NoDirExists(s.cfg.BackupDir)
}

// ListBackups tests

func (s *BackupSuite) TestListBackupsNewestFirst() {
	s.seed("Alice")

	first, err := s.service.Backup(s.ctx)
	s.Require().NoError(err)
	s.clock.Advance(90 * time.Second)
	second, err := s.service.Backup(s.ctx)
	s.Require().NoError(err)

	// Files that are not backups are ignored
	s.Require().NoError(os.WriteFile(filepath.Join(s.cfg.BackupDir, "notes.txt"), []byte("x"), 0o600))

	backups, err := s.service.ListBackups()
	s.Require().NoError(err)
	s.Require().Len(backups, 2)
	s.Equal(second.Name, backups[0].Name)
	s.Equal(first.Name, backups[1].Name)
	s.True(second.Created.Equal(backups[0].Created))
}

func (s *BackupSuite) TestListBackupsMissingDir() {
	backups, err := s.service.ListBackups()
	s.Require().NoError(err)
	s.Empty(backups)
}

// Restore tests

func (s *BackupSuite) TestRestoreReplacesDatabase() {
	s.seed("Alice", "Bob")
	backup, err := s.service.Backup(s.ctx)
	s.Require().NoError(err)

	s.seed("Mallory")
	s.clock.Advance(time.Minute)

	safety, err := s.service.Restore(s.ctx, backup.Path)
	s.Require().NoError(err)
	s.Require().NotNil(safety)
	s.NotEqual(backup.Name, safety.Name)

	s.Equal([]string{"Alice", "Bob"}, s.playerNames())

	// The pre-restore state was kept
	copied, err := sqlite.Open(safety.Path)
	s.Require().NoError(err)
	defer func() { _ = copied.Close() }()
	players, err := copied.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Mallory", players[0].Name)
}

func (s *BackupSuite) TestRestoreWithoutCurrentDatabase() {
	s.seed("Alice")
	backup, err := s.service.Backup(s.ctx)
	s.Require().NoError(err)

	for _, suffix := range []string{"", "-wal", "-shm"} {
		_ = os.Remove(s.cfg.DBPath + suffix)
	}

	safety, err := s.service.Restore(s.ctx, backup.Path)
	s.Require().NoError(err)
	s.Nil(safety)
	s.Equal([]string{"Alice"}, s.playerNames())
}

func (s *BackupSuite) TestRestoreMissingBackup() {
	s.seed("Alice")

	_, err := s.service.Restore(s.ctx, filepath.Join(s.dir, "nope.db"))
	s.ErrorIs(err, ErrBackupNotFound)
	s.Equal([]string{"Alice"}, s.playerNames())
}

// Name helpers

func TestParseBackupName(t *testing.T) {
	name := backupName(time.Date(2026, 1, 12, 9, 30, 15, 250*int(time.Millisecond), time.UTC))
	if name != "backup_2026-01-12T09-30-15-250Z.db" {
		t.Fatalf("name = %q", name)
	}

	parsed, ok := parseBackupName(name)
	if !ok {
		t.Fatal("expected name to parse")
	}
	if want := time.Date(2026, 1, 12, 9, 30, 15, 250*int(time.Millisecond), time.UTC); !parsed.Equal(want) {
		t.Fatalf("parsed = %v, want %v", parsed, want)
	}

	if _, ok := parseBackupName("backup_garbage.db"); ok {
		t.Fatal("expected garbage name to be rejected")
	}
}
