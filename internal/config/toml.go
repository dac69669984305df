// Package config loads, validates and writes the TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/dictstat/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	History HistoryConfig `toml:"history"`
	Stats   StatsConfig   `toml:"stats"`
	Log     LogConfig     `toml:"log"`
}

// HistoryConfig maps history source settings.
type HistoryConfig struct {
	Path           *string `toml:"path"`
	Watch          *bool   `toml:"watch"`
	RefreshSeconds *int    `toml:"refresh-seconds"`
}

// StatsConfig maps analytics settings.
type StatsConfig struct {
	DailyGoal       *int    `toml:"daily-goal"`
	WeeklyGoal      *int    `toml:"weekly-goal"`
	TopWords        *int    `toml:"top-words"`
	CommonWordsFile *string `toml:"common-words-file"`
	Timezone        *string `toml:"timezone"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Apply overlays the values set in fc onto cfg.
func (fc FileConfig) Apply(cfg model.Config) model.Config {
	setString(&cfg.HistoryPath, fc.History.Path)
	if fc.History.Watch != nil {
		cfg.Watch = *fc.History.Watch
	}
	setInt(&cfg.RefreshSeconds, fc.History.RefreshSeconds)
	setInt(&cfg.DailyGoal, fc.Stats.DailyGoal)
	setInt(&cfg.WeeklyGoal, fc.Stats.WeeklyGoal)
	setInt(&cfg.TopWords, fc.Stats.TopWords)
	setString(&cfg.CommonWordsFile, fc.Stats.CommonWordsFile)
	setString(&cfg.Timezone, fc.Stats.Timezone)
	setString(&cfg.LogLevel, fc.Log.Level)
	cfg.HistoryPath = ExpandHome(cfg.HistoryPath)
	cfg.CommonWordsFile = ExpandHome(cfg.CommonWordsFile)
	return cfg
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Render returns cfg as a commented TOML document.
func Render(cfg model.Config) string {
	return fmt.Sprintf(`# dictstat configuration
# CLI flags override these values.

[history]
# JSON log written by the dictation tool.
path = %q
# Reload the dashboard when the history file changes.
watch = %t
# Fallback refresh interval for the dashboard.
refresh-seconds = %d

[stats]
daily-goal = %d
weekly-goal = %d
# Words shown in the top words table.
top-words = %d
# Extra words (one per line) treated as common by the rare words metric.
common-words-file = %q
# IANA zone used for days and hours, e.g. "Europe/Berlin". Empty means local.
timezone = %q

[log]
# trace, debug, info, warn or error.
level = %q
`, cfg.HistoryPath, cfg.Watch, cfg.RefreshSeconds, cfg.DailyGoal, cfg.WeeklyGoal, cfg.TopWords,
		cfg.CommonWordsFile, cfg.Timezone, cfg.LogLevel)
}

// Write stores cfg at path, creating parent directories.
func Write(path string, cfg model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
