package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":    "trace",
		"debug":    "debug",
		"info":     "info",
		"warn":     "warn",
		"warning":  "warn",
		" ERROR ":  "error",
		"":         "info",
		"nonsense": "info",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in).String(), "parseLevel(%q)", in)
	}
}

func TestInitGetNamed(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "console", Writer: &buf})

	Get().Debug().Str("path", "history.json").Msg("loaded")
	Named("watcher").Warn().Msg("watch failed")
	Get().Trace().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "history.json")
	assert.Contains(t, out, "watch failed")
	assert.Contains(t, out, "watcher")
	assert.NotContains(t, out, "hidden")
	assert.Same(t, Get(), Get())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DICTSTAT_LOG_LEVEL", "WARN")
	t.Setenv("DICTSTAT_LOG_FORMAT", "json")
	opt := FromEnv()
	assert.Equal(t, "warn", opt.Level)
	assert.Equal(t, "json", opt.Format)
}
