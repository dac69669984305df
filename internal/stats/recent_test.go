package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/dictstat/internal/model"
)

func TestFormatRelativeBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{59*time.Minute + 59*time.Second, "59m ago"},
		{60 * time.Minute, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{6*24*time.Hour + 23*time.Hour, "6d ago"},
		{7 * 24 * time.Hour, "Mar 3 12:00"},
		{-5 * time.Minute, "Just now"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatRelative(now.Add(-tc.ago), now), "ago %s", tc.ago)
	}
}

func TestFormatRelativeDateUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, loc)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 2 01:30", formatRelative(ts, now))
}

func TestRecentSessionsNewestFirstAndCapped(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.SessionRecord, 150)
	for i := range records {
		records[i] = model.SessionRecord{Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}

	recent := RecentSessions(records)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, records[149].Timestamp, recent[0].Timestamp)
	assert.Equal(t, records[50].Timestamp, recent[RecentLimit-1].Timestamp)

	assert.Len(t, RecentSessions(records[:3]), 3)
	assert.Empty(t, RecentSessions(nil))
}

func TestSessionWordsFallsBackToText(t *testing.T) {
	assert.Equal(t, 7, SessionWords(model.SessionRecord{WordCount: 7, Text: "one"}))
	assert.Equal(t, 3, SessionWords(model.SessionRecord{Text: "  one two\nthree "}))
	assert.Zero(t, SessionWords(model.SessionRecord{}))
}

func TestRenderRecent(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := []model.SessionRecord{
		{Timestamp: now.Add(-5 * time.Minute), Text: "ship it\nnow", Mode: model.ModePlan, WordCount: 3},
		{Timestamp: now.Add(-3 * time.Hour), Text: "no mode and no count here"},
		{Timestamp: now.Add(-48 * time.Hour), Text: strings.Repeat("long ", 40), WordCount: 40},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderRecent(&buf, recent, now, 60))
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Recent sessions (3)", lines[0])
	assert.Contains(t, lines[2], "5m ago")
	assert.Contains(t, lines[2], "[plan]")
	assert.Contains(t, lines[2], "ship it now")
	assert.Contains(t, lines[3], "3h ago")
	assert.Contains(t, lines[3], "[transcribe]")
	assert.Contains(t, lines[3], " 6 ")
	assert.Contains(t, lines[4], "2d ago")
	assert.True(t, strings.HasSuffix(lines[4], "..."), lines[4])
	for _, line := range lines {
		assert.LessOrEqual(t, displayWidth(line), 60, line)
	}
}

func TestRenderRecentEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRecent(&buf, nil, time.Now(), 0))
	assert.Equal(t, "No recent sessions.\n", buf.String())
}

func TestBuildCalendarSparseYear(t *testing.T) {
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC) // Saturday
	daily := map[string]DailyStats{
		"2023-06-14": {Sessions: 9}, // one day before the window
		"2023-06-15": {Sessions: 2},
		"2024-01-01": {Sessions: 4},
		"2024-02-29": {Sessions: 1},
		"2024-06-15": {Sessions: 1},
	}

	cal := BuildCalendar(daily, now)
	assert.Equal(t, "2023-06-15", DayKey(cal.Start, time.UTC))
	assert.Equal(t, "2024-06-15", DayKey(cal.End, time.UTC))
	assert.Equal(t, 367, cal.Days)
	assert.Equal(t, 53, cal.Weeks())
	assert.Equal(t, 4, cal.Max)
	assert.Equal(t, 4, cal.ActiveDays)

	assert.Equal(t, 2, cal.Cells[time.Thursday][0])
	assert.Equal(t, 4, cal.Cells[time.Monday][29])
	assert.Equal(t, 1, cal.Cells[time.Thursday][37])
	assert.Equal(t, 1, cal.Cells[time.Saturday][52])
	assert.Equal(t, 0, cal.Cells[time.Sunday][52])
	assert.Equal(t, -1, cal.Cells[time.Wednesday][0])
	assert.Equal(t, -1, cal.Cells[time.Sunday][0])
}

func TestBuildCalendarEmptyKeepsMaxAtOne(t *testing.T) {
	cal := BuildCalendar(nil, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, cal.Max)
	assert.Zero(t, cal.ActiveDays)
}

func TestRenderCalendarSparseYear(t *testing.T) {
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	snap := Snapshot{DailyByDate: map[string]DailyStats{
		"2023-06-15": {Sessions: 2},
		"2024-01-01": {Sessions: 4},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderCalendar(&buf, snap, now))
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 10)

	assert.Equal(t, "Year (sessions per day)", lines[0])
	assert.Equal(t, 5+29, strings.Index(lines[1], "Jan"))
	assert.Equal(t, 5+2, strings.Index(lines[1], "Jul"))

	mon := lines[2+int(time.Monday)]
	require.True(t, strings.HasPrefix(mon, "Mon  "))
	assert.Equal(t, byte('@'), mon[5+29])
	assert.Equal(t, byte(' '), mon[5])

	thu := lines[2+int(time.Thursday)]
	assert.Equal(t, byte('+'), thu[5])
	assert.Equal(t, byte('_'), thu[6])

	assert.Equal(t, "Active days: 2 of 367", lines[9])
}

func TestRenderCalendarNoActivity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCalendar(&buf, Snapshot{}, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "No activity in the last year.\n", buf.String())
}
