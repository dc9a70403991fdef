package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App      App      `mapstructure:"app"`
	Database Database `mapstructure:"database"`
	Telegram Telegram `mapstructure:"telegram"`
}

func TestLoadFromEnvironmentOnly(t *testing.T) {
	t.Setenv("APP_NAME", "journal")
	t.Setenv("DATABASE_PORT", "6432")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	var cfg testConfig
	require.NoError(t, Load("", &cfg))

	assert.Equal(t, "journal", cfg.App.Name)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  host: localhost\n  name: journal\n"), 0o600))
	t.Setenv("DATABASE_HOST", "db.internal")

	var cfg testConfig
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "journal", cfg.Database.DBName)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
	assert.Empty(t, cfg.App.Name)
}
