package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series is a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

// Chart describes a braille line plot. The first series drives the axis
// labels; every other series is scaled to its own range.
type Chart struct {
	Title  string
	Series []Series
	// Width is the plot area in columns; 0 sizes it to the terminal.
	Width  int
	Height int
	// Color forces ANSI color even when the writer is not a terminal.
	Color bool
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
	"\x1b[34m", // blue
}

// PlotSeries renders a plot sized to width columns and height rows.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return Chart{Title: title, Series: series, Width: width, Height: height}.Render(w)
}

// PlotSeriesWithColor is PlotSeries with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return Chart{Title: title, Series: series, Width: width, Height: height, Color: forceColor}.Render(w)
}

// Render writes the chart to w. Charts without data write nothing.
func (c Chart) Render(w io.Writer) error {
	series := nonEmptySeries(c.Series)
	if len(series) == 0 {
		return nil
	}
	height := c.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := c.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	ranges := make([]valueRange, len(series))
	layers := make([]*canvas, len(series))
	for i, s := range series {
		values := resampleSeries(s.Values, width)
		ranges[i] = rangeOf(values)
		layers[i] = newCanvas(width, height)
		layers[i].plotLine(values, ranges[i], lineStyles[i%len(lineStyles)])
	}

	useColor := shouldUseColor(w, c.Color)
	lines := make([]string, 0, height+3)
	if c.Title != "" {
		lines = append(lines, c.Title)
	}
	labels := axisLabels(ranges[0], height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		fmt.Fprintf(&b, "%*s%s", axisLabelWidth, labels[row], axisSeparator)
		for col := 0; col < width; col++ {
			mask, owner := composeCell(layers, col, row)
			ch := brailleRune(mask)
			if useColor && owner >= 0 {
				b.WriteString(seriesColors[owner%len(seriesColors)])
				b.WriteRune(ch)
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	lines = append(lines, legend(series, ranges, useColor), "")
	return writeLines(w, lines)
}

// PlotWidthFor returns the plot area that fits within totalWidth columns.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	width := totalWidth - axisLabelWidth - utf8.RuneCountInString(axisSeparator)
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

type valueRange struct {
	min float64
	max float64
}

func rangeOf(values []float64) valueRange {
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, v := range values {
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	if math.IsInf(r.min, 0) || math.IsInf(r.max, 0) {
		return valueRange{min: 0, max: 1}
	}
	if r.max-r.min < 1e-9 {
		r.min--
		r.max++
	}
	return r
}

// row maps v onto [0, rows) with the maximum at row 0.
func (r valueRange) row(v float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - r.min) / (r.max - r.min)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return clampInt(row, 0, rows-1)
}

func axisLabels(r valueRange, height int) []string {
	labels := make([]string, height)
	labels[0] = compactNumber(r.max)
	if height > 2 {
		labels[height/2] = compactNumber((r.min + r.max) / 2)
	}
	if height > 1 {
		labels[height-1] = compactNumber(r.min)
	}
	return labels
}

func legend(series []Series, ranges []valueRange, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleRune(0x01)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s, %s..%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name,
			compactNumber(ranges[i].min), compactNumber(ranges[i].max))
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// canvas is a grid of braille cells; each cell holds 2x4 dots.
type canvas struct {
	width  int
	height int
	cells  [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for i := range cells {
		cells[i] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

// plotLine draws values, one per column, joined by straight segments.
func (c *canvas) plotLine(values []float64, r valueRange, style lineStyle) {
	dotRows := c.height * 4
	prevX, prevY := -1, -1
	for col, v := range values {
		x, y := col*2, r.row(v, dotRows)
		if prevX < 0 {
			if style.draws(x) {
				c.set(x, y)
			}
		} else {
			drawLine(prevX, prevY, x, y, func(dx, dy int) {
				if style.draws(dx) {
					c.set(dx, dy)
				}
			})
		}
		prevX, prevY = x, y
	}
}

// set turns on the dot at (x, y) in dot coordinates.
func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.width || y/4 >= c.height {
		return
	}
	c.cells[y/4][x/2] |= dotBit(x%2, y%4)
}

func (c *canvas) mask(col, row int) uint8 {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return 0
	}
	return c.cells[row][col]
}

// composeCell merges all layers; the first layer with a dot owns the color.
func composeCell(layers []*canvas, col, row int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, layer := range layers {
		m := layer.mask(col, row)
		if m == 0 {
			continue
		}
		if owner < 0 {
			owner = i
		}
		mask |= m
	}
	return mask, owner
}

func (ls lineStyle) draws(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries averages down or interpolates up to exactly width points.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		last := len(values) - 1
		for i := range out {
			pos := float64(i) * float64(last) / float64(width-1)
			idx := int(pos)
			if idx >= last {
				out[i] = values[last]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// drawLine walks a Bresenham line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := absInt(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -absInt(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// dotBit maps a dot inside a 2x4 cell to its braille bit.
func dotBit(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if x == 0 {
		return left[y]
	}
	return right[y]
}

func brailleRune(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
