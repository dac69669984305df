package stats

import "io"

const trendWindow = 7

// RenderTrends plots daily words, cumulative time saved and daily WPM.
// totalWidth of 0 sizes the plots to the terminal.
func RenderTrends(w io.Writer, snap Snapshot, totalWidth, height int, useColor bool) error {
	if len(snap.Daily) == 0 {
		return nil
	}
	words := make([]float64, len(snap.Daily))
	saved := make([]float64, len(snap.Daily))
	talking := make([]float64, len(snap.Daily))
	wpm := make([]float64, 0, len(snap.Daily))
	for i, d := range snap.Daily {
		words[i] = float64(d.Words)
		saved[i] = d.CumulativeTimeSaved
		talking[i] = d.CumulativeTalkingMinutes
		if d.AvgWPM != nil {
			wpm = append(wpm, *d.AvgWPM)
		}
	}

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	charts := []Chart{
		{Title: "Words per day", Series: []Series{
			{Name: "Words", Values: words},
			{Name: "7-day average", Values: MovingAverage(words, trendWindow)},
		}},
		{Title: "Cumulative minutes", Series: []Series{
			{Name: "Time saved", Values: saved},
			{Name: "Talking", Values: talking},
		}},
		{Title: "Daily WPM", Series: []Series{{Name: "Avg WPM", Values: wpm}}},
	}
	for _, c := range charts {
		c.Width, c.Height, c.Color = width, height, useColor
		if err := c.Render(w); err != nil {
			return err
		}
	}
	return nil
}
