package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/dictstat/internal/model"
)

var sampleNow = time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

func sampleSnapshot(t *testing.T) Snapshot {
	t.Helper()
	return Aggregate(sampleRecords(), sampleNow)
}

func sampleRecords() []model.SessionRecord {
	now := sampleNow
	return []model.SessionRecord{
		{Timestamp: now.Add(-50 * time.Hour), Text: "um so the deploy is broken again", WordCount: 7, DurationSeconds: 9, WPM: model.Float(47), Mode: model.ModeTranscribe},
		{Timestamp: now.Add(-26 * time.Hour), Text: "the deploy works great now thanks", WordCount: 6, DurationSeconds: 8, WPM: model.Float(45), Mode: model.ModeCleanup},
		{Timestamp: now.Add(-2 * time.Hour), Text: "like the deploy pipeline is great", WordCount: 6, DurationSeconds: 400, Mode: model.ModePlan},
		{Timestamp: now.Add(-9 * 24 * time.Hour), Text: "kubernetes kubernetes cluster", WordCount: 3, DurationSeconds: 20, Mode: model.ModeGreppy},
	}
}

func TestRenderReportIncludesEverySection(t *testing.T) {
	snap := sampleSnapshot(t)
	report := Report{
		Config:      model.StatsConfig{DailyGoal: 500, WeeklyGoal: 2500, TopWords: 10},
		GeneratedAt: sampleNow,
		Records:     snap.Sessions,
		Snapshot:    snap,
		Recent:      RecentSessions(sampleRecords()),
	}
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report, RenderOptions{Width: 60, PlotHeight: 4}))

	out := buf.String()
	for _, want := range []string{
		"Summary", "Goals", "Week over week", "Activity", "By hour", "Session length",
		"Words per day", "Filler words", "Common phrases", "Sentiment", "Modes", "Vocabulary", "Top words",
		"Year (sessions per day)", "Recent sessions (4)", "2h ago", "[plan]",
		"the deploy", "deploy",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderersHandleEmptySnapshot(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Aggregate(nil, now)
	renderers := map[string]func(*bytes.Buffer) error{
		"summary":    func(b *bytes.Buffer) error { return RenderSummary(b, snap) },
		"goals":      func(b *bytes.Buffer) error { return RenderGoals(b, snap, 500, 2500) },
		"comparison": func(b *bytes.Buffer) error { return RenderPeriodComparison(b, snap) },
		"heatmap":    func(b *bytes.Buffer) error { return RenderHeatmap(b, snap) },
		"calendar":   func(b *bytes.Buffer) error { return RenderCalendar(b, snap, now) },
		"recent":     func(b *bytes.Buffer) error { return RenderRecent(b, nil, now, 80) },
		"hourly":     func(b *bytes.Buffer) error { return RenderHourly(b, snap) },
		"durations":  func(b *bytes.Buffer) error { return RenderDurationHistogram(b, snap) },
		"trends":     func(b *bytes.Buffer) error { return RenderTrends(b, snap, 60, 4, false) },
		"fillers":    func(b *bytes.Buffer) error { return RenderFillers(b, snap) },
		"phrases":    func(b *bytes.Buffer) error { return RenderPhrases(b, snap) },
		"sentiment":  func(b *bytes.Buffer) error { return RenderSentiment(b, snap) },
		"modes":      func(b *bytes.Buffer) error { return RenderModes(b, snap) },
		"vocabulary": func(b *bytes.Buffer) error { return RenderVocabulary(b, snap) },
		"top words":  func(b *bytes.Buffer) error { return RenderTopWords(b, snap, 10) },
		"report":     func(b *bytes.Buffer) error { return RenderReport(b, Report{Snapshot: snap}, RenderOptions{}) },
	}
	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, render(&buf))
		})
	}
}

func TestRenderHeatmapMarksPeak(t *testing.T) {
	var snap Snapshot
	snap.ActivityMatrix[time.Tuesday][14] = 5
	snap.ActivityMatrix[time.Friday][9] = 1

	var buf bytes.Buffer
	require.NoError(t, RenderHeatmap(&buf, snap))
	assert.Contains(t, buf.String(), "Peak: Tuesday 14:00 (5 sessions)")
	assert.Contains(t, buf.String(), "@@")
}

func TestRenderGoals(t *testing.T) {
	snap := Snapshot{Today: PeriodStats{Words: 250}, ThisWeekWords: 3000}
	var buf bytes.Buffer
	require.NoError(t, RenderGoals(&buf, snap, 500, 2500))
	out := buf.String()
	assert.Contains(t, out, "250 / 500")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "3,000 / 2,500")
	assert.Contains(t, out, "120%")
}

func TestPeakSlot(t *testing.T) {
	_, ok := PeakSlot([7][24]int{})
	assert.False(t, ok)

	var m [7][24]int
	m[time.Monday][8] = 3
	m[time.Sunday][22] = 3
	peak, ok := PeakSlot(m)
	require.True(t, ok)
	assert.Equal(t, Peak{Weekday: time.Sunday, Hour: 22, Sessions: 3}, peak)
	assert.Equal(t, 3, SessionsByHour(m)[8])
	assert.Equal(t, 3, SessionsByWeekday(m)[time.Monday])
}

func TestDurationHistogram(t *testing.T) {
	got := DurationHistogram([]float64{3, 14.9, 15, 45, 90, 299, 300, 3600})
	assert.Equal(t, []int{2, 1, 1, 1, 1, 2}, got)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "1,234.5", FormatFloat(1234.5, 1))
	assert.Equal(t, "42 min", FormatMinutes(42.2))
	assert.Equal(t, "2h 05m", FormatMinutes(125))
	assert.Equal(t, "9s", FormatSeconds(9.4))
	assert.Equal(t, "3m 05s", FormatSeconds(185))
	assert.Equal(t, "1.2k", compactNumber(1234))
	assert.Equal(t, "12k", compactNumber(12345))
	assert.Equal(t, "0.5", compactNumber(0.5))
	assert.Equal(t, "-", change(0, 0))
	assert.Equal(t, "new", change(5, 0))
	assert.Equal(t, "+50%", change(15, 10))
	assert.Equal(t, "-25%", change(3, 4))
}

func TestMovingAverageAndSparkline(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 5}, MovingAverage([]float64{2, 4, 6}, 2))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
	assert.Equal(t, " :@", Sparkline([]float64{0, 2, 9}))
	assert.Equal(t, "++", Sparkline([]float64{3, 3}))
	assert.Equal(t, "", Sparkline(nil))
}

func TestMoodLabel(t *testing.T) {
	assert.Equal(t, "positive", MoodLabel(0.3))
	assert.Equal(t, "negative", MoodLabel(-0.3))
	assert.Equal(t, "neutral", MoodLabel(0.01))
}

func TestRenderModesKeepsKnownOrder(t *testing.T) {
	snap := Snapshot{
		Sessions: 4,
		ModeCounts: map[model.Mode]int{
			model.ModeTranscribe: 1,
			model.ModePlan:       2,
			"dictate":            1,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderModes(&buf, snap))
	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("transcribe")), bytes.Index(buf.Bytes(), []byte("plan")))
	assert.Contains(t, out, "greppy")
	assert.Contains(t, out, "dictate")
	assert.Contains(t, out, "50%")
}
