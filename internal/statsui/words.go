package statsui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dictstat/internal/stats"
)

const maxWordRows = 1000

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

func (m *Model) initWordsTable() {
	m.words = table.New(
		table.WithColumns(wordColumns(80)),
		table.WithHeight(1),
	)
	m.words.SetStyles(wordTableStyles())
}

func wordColumns(width int) []table.Column {
	// Each cell carries one column of right padding.
	wordWidth := maxInt(10, width-6-9-8-4)
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Word", Width: wordWidth},
		{Title: "Count", Width: 9},
		{Title: "Share", Width: 8},
	}
}

func wordRows(snap stats.Snapshot) []table.Row {
	ranked := stats.TopCounts(snap.WordFrequency, maxWordRows)
	rows := make([]table.Row, 0, len(ranked))
	for i, wc := range ranked {
		share := 0.0
		if snap.TotalWords > 0 {
			share = float64(wc.Count) / float64(snap.TotalWords) * 100
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			wc.Word,
			stats.FormatInt(wc.Count),
			fmt.Sprintf("%.2f%%", share),
		})
	}
	return rows
}

// applyWordsTable refreshes the word table. Rows are rebuilt only when force
// is set; otherwise only the size follows the window.
func (m *Model) applyWordsTable(force bool) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	if force {
		rows := []table.Row{}
		if m.cache.ok {
			rows = wordRows(m.cache.report.Snapshot)
		}
		m.words.SetColumns(wordColumns(width))
		m.words.SetRows(rows)
		m.layout.rowCount = len(rows)
		m.layout.width = 0
	}
	m.setWordsTableSize(width, bodyHeight)
}

func (m *Model) setWordsTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.layout.width == width && m.layout.height == viewportHeight {
		return
	}
	m.layout.width = width
	m.layout.height = viewportHeight
	m.words.SetColumns(wordColumns(width))
	m.words.SetWidth(width)
	m.words.SetHeight(viewportHeight)
	viewportHeight = m.adjustWordsTableHeight(height)
	if m.layout.height != viewportHeight {
		m.layout.height = viewportHeight
		m.words.SetHeight(viewportHeight)
	}
}

// adjustWordsTableHeight corrects for the header border so the rendered
// table fills exactly bodyHeight lines.
func (m *Model) adjustWordsTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.words.Height()
	for range 2 {
		viewHeight := lipgloss.Height(m.words.View())
		if viewHeight == target {
			return height
		}
		height = maxInt(1, height+target-viewHeight)
		m.words.SetHeight(height)
	}
	return height
}

func wordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
