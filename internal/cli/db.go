package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/arenafc/internal/dependencies/clock"
	"github.com/mcoot/arenafc/internal/dependencies/ids"
	"github.com/mcoot/arenafc/internal/maintenance"
	"github.com/mcoot/arenafc/internal/services/player"
	"github.com/mcoot/arenafc/internal/storage/sqlite"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "SQLite database maintenance",
	}

	cmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file (env: ARENAFC_DB)")
	cmd.PersistentFlags().StringVar(&cfg.BackupDir, "backup-dir", cfg.BackupDir, "Backup directory (env: ARENAFC_BACKUP_DIR)")

	cmd.AddCommand(newDBMigrateCmd())
	cmd.AddCommand(newDBStatusCmd())
	cmd.AddCommand(newDBBackupCmd())
	cmd.AddCommand(newDBBackupsCmd())
	cmd.AddCommand(newDBRestoreCmd())
	cmd.AddCommand(newDBClearPlayersCmd())

	return cmd
}

func newMaintenance() *maintenance.Service {
	return maintenance.New(maintenance.Config{
		DBPath:    cfg.DBPath,
		BackupDir: cfg.BackupDir,
	}, clock.New(), logger)
}

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			status, err := store.Migrations(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).Print(status)
			return nil
		},
	}
}

func newDBStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfg.DBPath); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%w: %s", maintenance.ErrDatabaseNotFound, cfg.DBPath)
				}
				return err
			}

			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			status, err := store.Migrations(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).Print(status)
			return nil
		},
	}
}

func newDBBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped copy of the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := newMaintenance().Backup(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).Print(*backup)
			return nil
		},
	}
}

func newDBBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List available backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := newMaintenance().ListBackups()
			if err != nil {
				return err
			}

			newOutput(cmd).Print(backups)
			return nil
		},
	}
}

func newDBRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the database with a backup",
		Long: `Replace the database with a backup.

The current database, if any, is backed up first. Stop the server before restoring.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			safety, err := newMaintenance().Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			if safety != nil {
				out.PrintMessage("Previous database saved to " + safety.Path)
			}
			out.PrintMessage("Restored " + cfg.DBPath + " from " + args[0])
			return nil
		},
	}
}

func newDBClearPlayersCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear-players",
		Short: "Delete every player from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to delete all players without --yes")
			}

			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := player.New(store, clock.New(), ids.New(), logger)
			n, err := svc.Clear(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Deleted %d players", n))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion")

	return cmd
}
