// Package history reads the dictation log written by the speech-to-text tool.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/dictstat/internal/model"
)

// Naive timestamps carry no offset and are read in the caller's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Result is the outcome of reading a history file.
type Result struct {
	Records []model.SessionRecord
	// Skipped counts entries dropped for a missing or unreadable timestamp.
	Skipped int
}

type file struct {
	Entries []entry `json:"entries"`
}

type entry struct {
	Timestamp       string   `json:"timestamp"`
	Text            string   `json:"text"`
	WordCount       *int     `json:"word_count"`
	DurationSeconds *float64 `json:"duration_seconds"`
	WPM             *float64 `json:"wpm"`
	Mode            string   `json:"mode"`
	Sentiment       *float64 `json:"sentiment"`
}

// Load reads the history file at path. A missing file is an empty history.
func Load(path string, loc *time.Location) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Records: []model.SessionRecord{}}, nil
		}
		return Result{}, fmt.Errorf("failed to read history: %w", err)
	}
	return Parse(data, loc)
}

// Parse decodes history JSON. Entries are returned in file order.
func Parse(data []byte, loc *time.Location) (Result, error) {
	if loc == nil {
		loc = time.Local
	}
	res := Result{Records: []model.SessionRecord{}}
	if len(strings.TrimSpace(string(data))) == 0 {
		return res, nil
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return Result{}, fmt.Errorf("failed to decode history: %w", err)
	}
	for _, e := range f.Entries {
		ts, err := ParseTimestamp(e.Timestamp, loc)
		if err != nil {
			res.Skipped++
			continue
		}
		rec := model.SessionRecord{
			Timestamp: ts,
			Text:      e.Text,
			WPM:       e.WPM,
			Mode:      model.Mode(strings.ToLower(strings.TrimSpace(e.Mode))),
			Sentiment: e.Sentiment,
		}
		if e.WordCount != nil {
			rec.WordCount = *e.WordCount
		}
		if e.DurationSeconds != nil {
			rec.DurationSeconds = *e.DurationSeconds
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// ParseTimestamp accepts RFC 3339 or a naive ISO-8601 timestamp, which is
// interpreted in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
