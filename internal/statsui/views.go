package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dictstat/internal/stats"
)

const cardWidth = 20

func renderOverview(report stats.Report, width int) string {
	snap := report.Snapshot
	cards := renderSummaryCards(stats.SummaryCards(snap), width)
	rest := renderSections(
		func(b *strings.Builder) error {
			return stats.RenderGoals(b, snap, report.Config.DailyGoal, report.Config.WeeklyGoal)
		},
		func(b *strings.Builder) error { return stats.RenderPeriodComparison(b, snap) },
	)
	return strings.TrimRight(cards+"\n\n"+rest, "\n")
}

// renderSummaryCards lays the cards out in as many columns as fit.
func renderSummaryCards(cards []stats.SummaryCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = metricCard(c.Label, c.Value)
	}
	perRow := maxInt(1, width/lipgloss.Width(rendered[0]))
	rows := make([]string, 0, len(rendered)/perRow+1)
	for start := 0; start < len(rendered); start += perRow {
		end := minInt(start+perRow, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Width(cardWidth).Render(content)
}

// renderSections concatenates text sections; a failing section shows its error
// in place.
func renderSections(sections ...func(*strings.Builder) error) string {
	var out strings.Builder
	for _, render := range sections {
		var b strings.Builder
		if err := render(&b); err != nil {
			fmt.Fprintf(&out, "Failed to render section: %v\n\n", err)
			continue
		}
		out.WriteString(b.String())
	}
	return strings.TrimRight(out.String(), "\n")
}
