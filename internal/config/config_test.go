package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/dictstat/internal/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigAndApply(t *testing.T) {
	path := writeFile(t, `
[history]
path = "/tmp/history.json"
watch = false

[stats]
daily-goal = 800
timezone = "UTC"
`)
	fc, err := LoadConfig(path)
	require.NoError(t, err)

	cfg := fc.Apply(Defaults())
	assert.Equal(t, "/tmp/history.json", cfg.HistoryPath)
	assert.False(t, cfg.Watch)
	assert.Equal(t, 800, cfg.DailyGoal)
	assert.Equal(t, DefaultWeeklyGoal, cfg.WeeklyGoal)
	assert.Equal(t, DefaultTopWords, cfg.TopWords)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[stats]\ndaily-gaol = 3\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily-gaol")
}

func TestRenderRoundTrips(t *testing.T) {
	want := Defaults()
	want.HistoryPath = "/data/history.json"
	want.DailyGoal = 321
	want.Timezone = "Europe/Berlin"
	want.LogLevel = "debug"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, Write(path, want))

	fc, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, fc.Apply(model.Config{}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Defaults()))

	bad := Defaults()
	bad.DailyGoal = 0
	bad.RefreshSeconds = 0
	bad.LogLevel = "loud"
	err := Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats.daily-goal")
	assert.Contains(t, err.Error(), "history.refresh-seconds")
	assert.Contains(t, err.Error(), "log.level")

	bad = Defaults()
	bad.Timezone = "Mars/Olympus"
	err = Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats.timezone")

	bad = Defaults()
	bad.CommonWordsFile = filepath.Join(t.TempDir(), "missing.txt")
	assert.Error(t, Validate(bad))
}

func TestLocation(t *testing.T) {
	loc, err := Location(model.Config{Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	loc, err = Location(model.Config{})
	require.NoError(t, err)
	assert.NotNil(t, loc)

	_, err = Location(model.Config{Timezone: "Nowhere/Special"})
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, "/cfg/dictstat/config.toml", DefaultConfigPath())
	assert.Equal(t, "/data/dictstat/dictstat.db", DefaultDBPath())
	assert.Equal(t, "/state/dictstat/dictstat.log", DefaultLogPath())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "h.json"), ExpandHome("~/notes/h.json"))
	assert.Equal(t, "/abs/h.json", ExpandHome("/abs/h.json"))
}
