package stats

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const histogramBarWidth = 30

// durationBuckets are the upper bounds, in seconds, of the session length
// histogram. The last bucket is open ended.
var durationBuckets = []struct {
	label string
	upTo  float64
}{
	{"< 15s", 15},
	{"15-30s", 30},
	{"30-60s", 60},
	{"1-2m", 120},
	{"2-5m", 300},
	{"5m+", 0},
}

// RenderHeatmap prints the weekday by hour activity grid.
func RenderHeatmap(w io.Writer, snap Snapshot) error {
	maxCount := 0
	for _, row := range snap.ActivityMatrix {
		for _, n := range row {
			maxCount = max(maxCount, n)
		}
	}

	var header strings.Builder
	header.WriteString("     ")
	for hour := 0; hour < 24; hour += 3 {
		fmt.Fprintf(&header, "%-6d", hour)
	}
	lines := []string{"Activity (sessions by weekday and hour)", strings.TrimRight(header.String(), " ")}
	for day, row := range snap.ActivityMatrix {
		var b strings.Builder
		fmt.Fprintf(&b, "%-4s ", time.Weekday(day).String()[:3])
		for _, n := range row {
			ch := heatChar(n, maxCount)
			b.WriteByte(ch)
			b.WriteByte(ch)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	if peak, ok := PeakSlot(snap.ActivityMatrix); ok {
		lines = append(lines, fmt.Sprintf("Peak: %s %02d:00 (%s sessions)", peak.Weekday, peak.Hour, FormatInt(peak.Sessions)))
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

// heatChar shades n against maxCount; any activity is visible.
func heatChar(n, maxCount int) byte {
	if n <= 0 || maxCount <= 0 {
		return sparkChars[0]
	}
	idx := 1 + (n*(len(sparkChars)-2)+maxCount-1)/maxCount
	return sparkChars[clampInt(idx, 1, len(sparkChars)-1)]
}

// RenderHourly prints sessions and average WPM per hour of day.
func RenderHourly(w io.Writer, snap Snapshot) error {
	byHour := SessionsByHour(snap.ActivityMatrix)
	maxCount := 0
	for _, n := range byHour {
		maxCount = max(maxCount, n)
	}
	if maxCount == 0 {
		_, err := fmt.Fprintln(w, "No hourly activity yet.")
		return err
	}
	rows := make([][]string, 0, 24)
	for hour, n := range byHour {
		wpm := "-"
		if v := snap.AvgWPMByHour[hour]; v != nil {
			wpm = FormatFloat(*v, 0)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", hour),
			bar(float64(n), float64(maxCount), histogramBarWidth),
			FormatInt(n),
			wpm,
		})
	}
	headers := []string{"Hour", "Sessions", "", "Avg WPM"}
	lines := append([]string{"By hour"}, formatTable(headers, rows, map[int]bool{2: true, 3: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// DurationHistogram counts sessions per duration bucket.
func DurationHistogram(durations []float64) []int {
	counts := make([]int, len(durationBuckets))
	for _, d := range durations {
		idx := len(durationBuckets) - 1
		for i, b := range durationBuckets[:len(durationBuckets)-1] {
			if d < b.upTo {
				idx = i
				break
			}
		}
		counts[idx]++
	}
	return counts
}

// RenderDurationHistogram prints how long sessions usually last.
func RenderDurationHistogram(w io.Writer, snap Snapshot) error {
	if len(snap.SessionDurations) == 0 {
		_, err := fmt.Fprintln(w, "No session durations recorded.")
		return err
	}
	counts := DurationHistogram(snap.SessionDurations)
	maxCount := 0
	for _, n := range counts {
		maxCount = max(maxCount, n)
	}
	rows := make([][]string, 0, len(counts))
	for i, n := range counts {
		rows = append(rows, []string{
			durationBuckets[i].label,
			bar(float64(n), float64(maxCount), histogramBarWidth),
			FormatInt(n),
		})
	}
	lines := append([]string{"Session length"}, formatTable(nil, rows, map[int]bool{2: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// Calendar is a year of daily session counts laid out like a contribution
// graph: one column per week, one row per weekday starting on Sunday.
type Calendar struct {
	Start time.Time
	End   time.Time
	// Cells[weekday][week] holds sessions; -1 marks days outside the year.
	Cells      [7][]int
	Max        int
	ActiveDays int
	Days       int
}

// BuildCalendar lays out the year ending on now's day, in now's location.
func BuildCalendar(daily map[string]DailyStats, now time.Time) Calendar {
	loc := now.Location()
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc)
	start := end.AddDate(-1, 0, 0)

	var days []time.Time
	for day := start; !day.After(end); day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc) {
		days = append(days, day)
	}
	offset := int(start.Weekday())
	weeks := (len(days)-1+offset)/7 + 1

	cal := Calendar{Start: start, End: end, Days: len(days)}
	for row := range cal.Cells {
		cal.Cells[row] = make([]int, weeks)
		for col := range cal.Cells[row] {
			cal.Cells[row][col] = -1
		}
	}
	for i, day := range days {
		n := daily[DayKey(day, loc)].Sessions
		cal.Cells[day.Weekday()][(i+offset)/7] = n
		cal.Max = max(cal.Max, n)
		if n > 0 {
			cal.ActiveDays++
		}
	}
	cal.Max = max(cal.Max, 1)
	return cal
}

// Weeks is the number of columns.
func (c Calendar) Weeks() int {
	return len(c.Cells[0])
}

// RenderCalendar prints the yearly calendar heatmap ending at now.
func RenderCalendar(w io.Writer, snap Snapshot, now time.Time) error {
	cal := BuildCalendar(snap.DailyByDate, now)
	if cal.ActiveDays == 0 {
		_, err := fmt.Fprintln(w, "No activity in the last year.")
		return err
	}

	months := []byte(strings.Repeat(" ", cal.Weeks()+3))
	nextFree := 0
	for i := 0; i < cal.Days; i++ {
		day := cal.Start.AddDate(0, 0, i)
		if day.Day() != 1 {
			continue
		}
		col := (i + int(cal.Start.Weekday())) / 7
		if col < nextFree {
			continue
		}
		copy(months[col:], day.Month().String()[:3])
		nextFree = col + 4
	}

	lines := []string{
		"Year (sessions per day)",
		strings.TrimRight("     "+string(months), " "),
	}
	for day, row := range cal.Cells {
		var b strings.Builder
		fmt.Fprintf(&b, "%-4s ", time.Weekday(day).String()[:3])
		for _, n := range row {
			switch {
			case n < 0:
				b.WriteByte(' ')
			case n == 0:
				b.WriteByte('_')
			default:
				b.WriteByte(heatChar(n, cal.Max))
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	lines = append(lines,
		fmt.Sprintf("Active days: %s of %s", FormatInt(cal.ActiveDays), FormatInt(cal.Days)),
		"",
	)
	return writeLines(w, lines)
}
