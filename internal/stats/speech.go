package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/dictstat/internal/model"
)

const sentimentDays = 7

// RenderFillers prints filler word usage.
func RenderFillers(w io.Writer, snap Snapshot) error {
	top := TopCounts(snap.FillerCounts, 0)
	total := 0
	for _, wc := range top {
		total += wc.Count
	}
	lines := []string{
		"Filler words",
		fmt.Sprintf("%s fillers, %.1f%% of all words", FormatInt(total), percent(float64(total), float64(snap.TotalWords))),
	}
	if len(top) > 0 {
		maxCount := float64(top[0].Count)
		rows := make([][]string, 0, len(top))
		for _, wc := range top {
			rows = append(rows, []string{
				wc.Word,
				bar(float64(wc.Count), maxCount, histogramBarWidth),
				FormatInt(wc.Count),
				fmt.Sprintf("%.1f%%", percent(float64(wc.Count), float64(snap.TotalWords))),
			})
		}
		lines = append(lines, formatTable(nil, rows, map[int]bool{2: true, 3: true})...)
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderPhrases prints the most repeated two and three word phrases.
func RenderPhrases(w io.Writer, snap Snapshot) error {
	lines := append([]string{"Common phrases"}, phraseTable("Two words", snap.TopBigrams)...)
	lines = append(lines, phraseTable("Three words", snap.TopTrigrams)...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

func phraseTable(title string, phrases []PhraseCount) []string {
	if len(phrases) == 0 {
		return []string{title + ": none repeated yet"}
	}
	rows := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		rows = append(rows, []string{p.Phrase, FormatInt(p.Count)})
	}
	return formatTable([]string{title, "Count"}, rows, map[int]bool{1: true})
}

// MoodLabel names a sentiment score.
func MoodLabel(score float64) string {
	switch {
	case score > 0.05:
		return "positive"
	case score < -0.05:
		return "negative"
	default:
		return "neutral"
	}
}

// RenderSentiment prints the daily sentiment trend.
func RenderSentiment(w io.Writer, snap Snapshot) error {
	if len(snap.Sentiment) == 0 {
		_, err := fmt.Fprintln(w, "No sentiment data yet.")
		return err
	}
	scores := make([]float64, len(snap.Sentiment))
	var weighted float64
	sessions := 0
	for i, p := range snap.Sentiment {
		scores[i] = p.Score
		weighted += p.Score * float64(p.Sessions)
		sessions += p.Sessions
	}
	overall := 0.0
	if sessions > 0 {
		overall = weighted / float64(sessions)
	}

	lines := []string{
		"Sentiment",
		fmt.Sprintf("Overall: %+.2f (%s)", overall, MoodLabel(overall)),
		"Trend: " + Sparkline(scores),
	}
	recent := snap.Sentiment[max(0, len(snap.Sentiment)-sentimentDays):]
	rows := make([][]string, 0, len(recent))
	for _, p := range recent {
		rows = append(rows, []string{
			p.Date,
			fmt.Sprintf("%+.2f", p.Score),
			MoodLabel(p.Score),
			FormatInt(p.Positive),
			FormatInt(p.Negative),
		})
	}
	lines = append(lines, formatTable([]string{"Date", "Score", "Mood", "+", "-"}, rows, map[int]bool{1: true, 3: true, 4: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderModes prints how sessions split across dictation modes.
func RenderModes(w io.Writer, snap Snapshot) error {
	counts := make(map[string]int, len(snap.ModeCounts))
	for mode, n := range snap.ModeCounts {
		counts[string(mode)] = n
	}
	// Known modes keep their order; anything else follows by count.
	rows := make([][]string, 0, len(counts))
	addRow := func(name string, n int) {
		rows = append(rows, []string{
			name,
			bar(float64(n), float64(snap.Sessions), histogramBarWidth),
			FormatInt(n),
			fmt.Sprintf("%.0f%%", percent(float64(n), float64(snap.Sessions))),
		})
	}
	for _, mode := range model.Modes {
		addRow(string(mode), counts[string(mode)])
		delete(counts, string(mode))
	}
	for _, wc := range TopCounts(counts, 0) {
		addRow(wc.Word, wc.Count)
	}
	lines := append([]string{"Modes"}, formatTable(nil, rows, map[int]bool{2: true, 3: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}
