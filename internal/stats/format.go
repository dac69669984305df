package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// FormatInt renders n with thousands separators.
func FormatInt(n int) string {
	return numbers.Sprintf("%d", n)
}

// FormatFloat renders v with thousands separators and prec decimals.
func FormatFloat(v float64, prec int) string {
	return numbers.Sprintf(fmt.Sprintf("%%.%df", prec), v)
}

// FormatMinutes renders a minute count as "42 min" or "3h 05m".
func FormatMinutes(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%.0f min", minutes)
	}
	total := int(math.Round(minutes))
	return fmt.Sprintf("%sh %02dm", FormatInt(total/60), total%60)
}

// FormatSeconds renders a duration as "42s" or "3m 05s".
func FormatSeconds(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}

// formatRelative renders t as "Just now", "5m ago", "3h ago", "2d ago", or
// a short date in now's location once it is a week old.
func formatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
	return t.In(now.Location()).Format("Jan 2 15:04")
}

// compactNumber is used for axis labels: 950, 1.2k, 3.4M.
func compactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.0fk", v/1e3)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case abs >= 100 || v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// bar draws a horizontal bar of value relative to maxValue.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(width)))
	return strings.Repeat("#", clampInt(n, 1, width))
}

// percent returns part/whole*100, or 0 when whole is 0.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
