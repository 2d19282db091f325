package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	DBPath    string
	BackupDir string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ARENAFC_SERVER", "http://localhost:3001"),
		DBPath:    getEnvOrDefault("ARENAFC_DB", "arena_fc.db"),
		BackupDir: getEnvOrDefault("ARENAFC_BACKUP_DIR", "backups"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
