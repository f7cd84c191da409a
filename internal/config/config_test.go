package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.DayStartHour)
	assert.Equal(t, 24, cfg.DayEndHour)
	assert.Equal(t, "default", cfg.Notifications)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day_start_hour: 99\nday_end_hour: 2\nnotifications: maybe\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.DayStartHour)
	assert.Equal(t, 24, cfg.DayEndHour)
	assert.Equal(t, "default", cfg.Notifications)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Notifications = "granted"
	cfg.ICSURL = "https://example.com/feed.ics"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "granted", loaded.Notifications)
	assert.Equal(t, "https://example.com/feed.ics", loaded.ICSURL)
}
