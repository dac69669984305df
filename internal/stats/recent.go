package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dictstat/internal/model"
)

// RecentLimit caps the recent session feed.
const RecentLimit = 100

const recentTextWidth = 60

// RecentSessions returns up to RecentLimit records, newest first. records
// must be sorted ascending, as ListSessions returns them.
func RecentSessions(records []model.SessionRecord) []model.SessionRecord {
	n := min(len(records), RecentLimit)
	out := make([]model.SessionRecord, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}

// SessionWords is the stored word count, or a whitespace split of the
// text when the count is missing.
func SessionWords(rec model.SessionRecord) int {
	if rec.WordCount > 0 {
		return rec.WordCount
	}
	return len(strings.Fields(rec.Text))
}

// RenderRecent prints the recent feed relative to now. width bounds the
// text column; zero means a fixed default.
func RenderRecent(w io.Writer, recent []model.SessionRecord, now time.Time, width int) error {
	if len(recent) == 0 {
		_, err := fmt.Fprintln(w, "No recent sessions.")
		return err
	}
	textWidth := recentTextWidth
	if width > 0 {
		// Leave room for the when, mode and words columns.
		textWidth = max(width-36, 16)
	}
	rows := make([][]string, 0, len(recent))
	for _, rec := range recent {
		text := strings.Join(strings.Fields(rec.Text), " ")
		rows = append(rows, []string{
			formatRelative(rec.Timestamp, now),
			"[" + string(rec.Mode.Resolve()) + "]",
			FormatInt(SessionWords(rec)),
			runewidth.Truncate(text, textWidth, "..."),
		})
	}
	headers := []string{"When", "Mode", "Words", "Text"}
	lines := append([]string{fmt.Sprintf("Recent sessions (%s)", FormatInt(len(recent)))},
		formatTable(headers, rows, map[int]bool{2: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}
