// Package stats aggregates dictation sessions into an analytics snapshot and
// renders it for the terminal.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

const goalBarWidth = 24

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clampInt(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// DictatedWords sums the recorded word counts of every day.
func DictatedWords(snap Snapshot) int {
	total := 0
	for _, d := range snap.Daily {
		total += d.Words
	}
	return total
}

// TimeSavedMinutes is the cumulative time saved at the last recorded day.
func TimeSavedMinutes(snap Snapshot) float64 {
	if len(snap.Daily) == 0 {
		return 0
	}
	return snap.Daily[len(snap.Daily)-1].CumulativeTimeSaved
}

// SummaryCard is one headline metric.
type SummaryCard struct {
	Label string
	Value string
}

// SummaryCards returns the headline metrics in display order.
func SummaryCards(snap Snapshot) []SummaryCard {
	return []SummaryCard{
		{Label: "Sessions", Value: FormatInt(snap.Sessions)},
		{Label: "Words", Value: FormatInt(DictatedWords(snap))},
		{Label: "Time saved", Value: FormatMinutes(TimeSavedMinutes(snap))},
		{Label: "Current streak", Value: pluralDays(snap.CurrentStreak)},
		{Label: "Longest streak", Value: pluralDays(snap.LongestStreak)},
		{Label: "Max WPM", Value: FormatFloat(snap.MaxWPM, 0)},
		{Label: "Best day", Value: FormatInt(snap.MaxWordsInDay) + " words"},
		{Label: "Longest session", Value: FormatSeconds(snap.LongestSession)},
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RenderSummary prints the headline metrics.
func RenderSummary(w io.Writer, snap Snapshot) error {
	if snap.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	cards := SummaryCards(snap)
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{c.Label + ":", c.Value})
	}
	lines := append([]string{"Summary"}, formatTable(nil, rows, map[int]bool{1: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderGoals prints progress towards the daily and weekly word goals.
func RenderGoals(w io.Writer, snap Snapshot, dailyGoal, weeklyGoal int) error {
	rows := [][]string{
		goalRow("Today", snap.Today.Words, dailyGoal),
		goalRow("This week", snap.ThisWeekWords, weeklyGoal),
	}
	lines := append([]string{"Goals"}, formatTable(nil, rows, map[int]bool{2: true, 3: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

func goalRow(label string, words, goal int) []string {
	pct := percent(float64(words), float64(goal))
	filled := bar(math.Min(pct, 100), 100, goalBarWidth)
	return []string{
		label,
		"[" + filled + strings.Repeat(".", goalBarWidth-len(filled)) + "]",
		FormatInt(words) + " / " + FormatInt(goal),
		fmt.Sprintf("%.0f%%", pct),
	}
}

// RenderPeriodComparison prints this week against last week.
func RenderPeriodComparison(w io.Writer, snap Snapshot) error {
	this, last := snap.ThisWeek, snap.LastWeek
	rows := [][]string{
		{"Words", FormatInt(this.Words), FormatInt(last.Words), change(float64(this.Words), float64(last.Words))},
		{"Sessions", FormatInt(this.Sessions), FormatInt(last.Sessions), change(float64(this.Sessions), float64(last.Sessions))},
		{"Talking", FormatSeconds(this.DurationSeconds), FormatSeconds(last.DurationSeconds), change(this.DurationSeconds, last.DurationSeconds)},
	}
	headers := []string{"", "This week", "Last week", "Change"}
	lines := append([]string{"Week over week"}, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

func change(current, previous float64) string {
	switch {
	case previous == 0 && current == 0:
		return "-"
	case previous == 0:
		return "new"
	}
	return fmt.Sprintf("%+.0f%%", (current-previous)/previous*100)
}
