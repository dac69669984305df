// Package model defines shared data structures.
package model

import "time"

// Mode is the dictation mode a session was recorded in.
type Mode string

// Known dictation modes.
const (
	ModeTranscribe Mode = "transcribe"
	ModeGreppy     Mode = "greppy"
	ModeCleanup    Mode = "cleanup"
	ModePlan       Mode = "plan"
)

// Modes lists the known modes in display order.
var Modes = []Mode{ModeTranscribe, ModeGreppy, ModeCleanup, ModePlan}

// Resolve maps an empty mode to transcribe. Unknown values are returned as-is.
func (m Mode) Resolve() Mode {
	if m == "" {
		return ModeTranscribe
	}
	return m
}

// Known reports whether the resolved mode is one of Modes.
func (m Mode) Known() bool {
	switch m.Resolve() {
	case ModeTranscribe, ModeGreppy, ModeCleanup, ModePlan:
		return true
	default:
		return false
	}
}

// SessionRecord is one logged dictation event.
type SessionRecord struct {
	Timestamp       time.Time
	Text            string
	WordCount       int
	DurationSeconds float64
	// WPM is nil unless both duration and word count were known.
	WPM  *float64
	Mode Mode
	// Sentiment is a precomputed compound score in [-1, 1], nil when absent.
	Sentiment *float64
}

// HasWPM reports whether the record carries a usable WPM sample.
func (r SessionRecord) HasWPM() bool {
	return r.WPM != nil && *r.WPM > 0
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since      *time.Time
	Mode       Mode
	Last       int
	DailyGoal  int
	WeeklyGoal int
	TopWords   int
}

// Config defines resolved application settings. The key tag names the
// setting in the config file.
type Config struct {
	HistoryPath     string `key:"history.path" validate:"required"`
	Watch           bool   `key:"history.watch"`
	RefreshSeconds  int    `key:"history.refresh-seconds" validate:"gte=1"`
	DailyGoal       int    `key:"stats.daily-goal" validate:"gt=0"`
	WeeklyGoal      int    `key:"stats.weekly-goal" validate:"gt=0"`
	TopWords        int    `key:"stats.top-words" validate:"gt=0,lte=200"`
	CommonWordsFile string `key:"stats.common-words-file" validate:"omitempty,file"`
	Timezone        string `key:"stats.timezone" validate:"omitempty,timezone"`
	LogLevel        string `key:"log.level" validate:"omitempty,oneof=trace debug info warn error"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
