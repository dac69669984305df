package stats

import (
	"fmt"
	"io"
	"strings"
)

const (
	newWordsShown  = 15
	rareWordsShown = 10
)

// RenderVocabulary prints vocabulary size, growth and word shape metrics.
func RenderVocabulary(w io.Writer, snap Snapshot) error {
	lines := []string{
		"Vocabulary",
		fmt.Sprintf("Unique words: %s of %s (%.1f%% richness)", FormatInt(snap.UniqueWords), FormatInt(snap.TotalWords), snap.Richness),
		fmt.Sprintf("Reading level: grade %.1f", snap.ReadingLevel),
	}
	if len(snap.VocabGrowth) > 0 {
		growth := make([]float64, len(snap.VocabGrowth))
		for i, p := range snap.VocabGrowth {
			growth[i] = float64(p.UniqueWords)
		}
		lines = append(lines, "Growth: "+Sparkline(growth))
	}

	newWords := snap.NewWordsThisWeek
	extra := ""
	if len(newWords) > newWordsShown {
		extra = fmt.Sprintf(" (+%d more)", len(newWords)-newWordsShown)
		newWords = newWords[:newWordsShown]
	}
	if len(newWords) == 0 {
		lines = append(lines, "New this week: none")
	} else {
		lines = append(lines, "New this week: "+strings.Join(newWords, ", ")+extra)
	}

	if len(snap.RareWords) > 0 {
		rare := snap.RareWords[:min(len(snap.RareWords), rareWordsShown)]
		rows := make([][]string, 0, len(rare))
		for _, wc := range rare {
			rows = append(rows, []string{wc.Word, FormatInt(wc.Count)})
		}
		lines = append(lines, formatTable([]string{"Rare word", "Count"}, rows, map[int]bool{1: true})...)
	}

	lines = append(lines, "Word length")
	maxCount := 0
	for _, n := range snap.WordLengthDist {
		maxCount = max(maxCount, n)
	}
	rows := make([][]string, 0, len(snap.WordLengthDist))
	for i, n := range snap.WordLengthDist {
		label := fmt.Sprintf("%d", i+1)
		if i == len(snap.WordLengthDist)-1 {
			label += "+"
		}
		rows = append(rows, []string{label, bar(float64(n), float64(maxCount), histogramBarWidth), FormatInt(n)})
	}
	lines = append(lines, formatTable(nil, rows, map[int]bool{0: true, 2: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderTopWords prints the n most used content words.
func RenderTopWords(w io.Writer, snap Snapshot, n int) error {
	words := snap.TopWords
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No repeated words yet.")
		return err
	}
	rows := make([][]string, 0, len(words))
	for i, wc := range words {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			wc.Word,
			FormatInt(wc.Count),
			fmt.Sprintf("%.2f%%", percent(float64(wc.Count), float64(snap.TotalWords))),
		})
	}
	lines := append([]string{"Top words"}, formatTable([]string{"#", "Word", "Count", "Share"}, rows, map[int]bool{0: true, 2: true, 3: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}
