package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "arena_fc.db", cfg.SQLitePath)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":3001", cfg.Addr())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"HOST":         "127.0.0.1",
		"PORT":         "8080",
		"STORAGE_TYPE": "sqlite",
		"SQLITE_PATH":  "/tmp/arena.db",
		"CORS_ORIGINS": "http://localhost:3000,https://arena.example",
		"LOG_LEVEL":    "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "/tmp/arena.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://localhost:3000", "https://arena.example"}, cfg.CORSOrigins)

	level, _ := cfg.SlogLevel()
	assert.Equal(t, slog.LevelDebug, level)
}

func TestFromMapRejectsBadValues(t *testing.T) {
	_, err := FromMap(map[string]string{"PORT": "not-a-port"})
	assert.Error(t, err)

	_, err = FromMap(map[string]string{"PORT": "70000"})
	assert.Error(t, err)

	_, err = FromMap(map[string]string{"LOG_LEVEL": "chatty"})
	assert.Error(t, err)
}

func TestLoadReadsDotenvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ARENAFC_TEST_UNUSED=1\nSTORAGE_TYPE=sqlite\nPORT=4000\n"), 0o600))

	t.Setenv("PORT", "5000")
	t.Setenv("STORAGE_TYPE", "")
	require.NoError(t, os.Unsetenv("STORAGE_TYPE"))
	t.Cleanup(func() { _ = os.Unsetenv("ARENAFC_TEST_UNUSED") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageType)
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
