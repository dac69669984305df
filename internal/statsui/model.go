// Package statsui provides the Bubble Tea dashboard.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dictstat/internal/logger"
	"github.com/verte-zerg/dictstat/internal/model"
	"github.com/verte-zerg/dictstat/internal/stats"
)

const (
	tabOverview = iota
	tabActivity
	tabTrends
	tabSpeech
	tabVocabulary
	tabWords
	tabRecent
)

const (
	plotHeight     = 8
	refreshTimeout = 30 * time.Second
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source produces a fresh report. It is called off the UI goroutine.
type Source interface {
	Report(ctx context.Context, cfg model.StatsConfig, now time.Time) (stats.Report, error)
}

// Options tunes the dashboard.
type Options struct {
	// Refresh reloads on a timer; zero disables it.
	Refresh time.Duration
	// Location parses the since filter. Defaults to time.Local.
	Location *time.Location
	// Now is the clock used for reports. Defaults to time.Now.
	Now func() time.Time
}

// HistoryChangedMsg asks the dashboard to reload after the history file changed.
type HistoryChangedMsg struct{}

type reportMsg struct {
	seq    uint64
	report stats.Report
	err    error
}

type tickMsg time.Time

// Model implements the Bubble Tea dashboard.
type Model struct {
	source Source
	cfg    model.StatsConfig
	opts   Options

	cache   snapshotCache
	nextSeq uint64
	loading bool
	errMsg  string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	words     table.Model
	layout    tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a dashboard reading from src.
func NewModel(src Source, cfg model.StatsConfig, opts Options) *Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Model{
		source: src,
		cfg:    cfg,
		opts:   opts,
		tabs:   []string{"Overview", "Activity", "Trends", "Speech", "Vocabulary", "Words", "Recent"},
	}
	m.initInputs()
	m.initWordsTable()
	m.initViewports()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.requestRefresh(), m.scheduleTick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case reportMsg:
		m.applyReport(msg)
		return m, nil
	case tickMsg:
		var cmd tea.Cmd
		if !m.loading {
			cmd = m.requestRefresh()
		}
		return m, tea.Batch(cmd, m.scheduleTick())
	case HistoryChangedMsg:
		return m, m.requestRefresh()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "1", "2", "3", "4", "5", "6", "7":
		idx, _ := strconv.Atoi(key)
		m.setTab(idx - 1)
		return m, tea.ClearScreen
	case "r":
		return m, m.requestRefresh()
	case "/":
		return m.startFilter()
	case "g", "home":
		if m.activeTab == tabWords {
			m.words.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return m, nil
	case "G", "end":
		if m.activeTab == tabWords {
			m.words.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return m, nil
	}
	var cmd tea.Cmd
	if m.activeTab == tabWords {
		m.words, cmd = m.words.Update(msg)
		return m, cmd
	}
	m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// requestRefresh starts a reload with the current filters. Results arrive as
// a reportMsg tagged with a sequence number; only the newest is kept.
func (m *Model) requestRefresh() tea.Cmd {
	if m.source == nil {
		return nil
	}
	m.nextSeq++
	m.loading = true
	seq, cfg, now, src := m.nextSeq, m.cfg, m.opts.Now(), m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		report, err := src.Report(ctx, cfg, now)
		return reportMsg{seq: seq, report: report, err: err}
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.opts.Refresh <= 0 {
		return nil
	}
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) applyReport(msg reportMsg) {
	if msg.seq == m.nextSeq {
		m.loading = false
	}
	if msg.err != nil {
		if msg.seq >= m.cache.seq {
			m.errMsg = msg.err.Error()
			logger.Named("statsui").Error().Err(msg.err).Uint64("seq", msg.seq).Msg("refresh failed")
		}
		return
	}
	if !m.cache.offer(msg.seq, msg.report) {
		logger.Named("statsui").Debug().Uint64("seq", msg.seq).Msg("dropped stale report")
		return
	}
	m.errMsg = ""
	m.applyWordsTable(true)
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.applyWordsTable(false)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.setTab(next)
}

func (m *Model) setTab(idx int) {
	if idx < 0 || idx >= len(m.tabs) {
		return
	}
	m.activeTab = idx
	if m.activeTab == tabWords {
		m.words.Focus()
	} else {
		m.words.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	status := padLines(m.renderStatus(), m.width)
	return tabs + "\n" + status
}

func (m *Model) renderStatus() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	mode := "all"
	if m.cfg.Mode != "" {
		mode = string(m.cfg.Mode)
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	status := fmt.Sprintf("Filters: since=%s  mode=%s  last=%s", since, mode, last)
	switch {
	case m.loading:
		status += "  refreshing..."
	case m.cache.ok:
		report := m.cache.report
		status += fmt.Sprintf("  %s sessions  updated %s", stats.FormatInt(report.Records), report.GeneratedAt.Format("15:04:05"))
	}
	return headerStyle.Render(truncateLine(status, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right 1-7  Scroll: up/down/pgup/pgdn  Refresh: r  Filters: /  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabWords && m.cache.ok && m.cache.report.Snapshot.Sessions > 0 {
		if len(m.words.Rows()) == 0 {
			return fitLines("No words recorded yet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.words.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

// renderTabContents redraws every tab from the cached report. It never
// reloads; resizing and tab switches are served from the cache.
func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if !m.cache.ok {
		placeholder := "Loading..."
		if m.errMsg != "" {
			placeholder = "Failed to load stats."
		}
		for i := range m.viewports {
			m.viewports[i].SetContent(placeholder)
		}
		return
	}
	report := m.cache.report
	if report.Snapshot.Sessions == 0 {
		for i := range m.viewports {
			m.viewports[i].SetContent("No sessions found.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(report, width))
	m.viewports[tabActivity].SetContent(renderSections(
		func(b *strings.Builder) error { return stats.RenderHeatmap(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderCalendar(b, report.Snapshot, report.GeneratedAt) },
		func(b *strings.Builder) error { return stats.RenderHourly(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderDurationHistogram(b, report.Snapshot) },
	))
	m.viewports[tabTrends].SetContent(renderSections(
		func(b *strings.Builder) error {
			return stats.RenderTrends(b, report.Snapshot, width, plotHeight, true)
		},
	))
	m.viewports[tabSpeech].SetContent(renderSections(
		func(b *strings.Builder) error { return stats.RenderFillers(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderPhrases(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderSentiment(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderModes(b, report.Snapshot) },
	))
	m.viewports[tabVocabulary].SetContent(renderSections(
		func(b *strings.Builder) error { return stats.RenderVocabulary(b, report.Snapshot) },
		func(b *strings.Builder) error { return stats.RenderTopWords(b, report.Snapshot, report.Config.TopWords) },
	))
	m.viewports[tabWords].SetContent("No words recorded yet.")
	m.viewports[tabRecent].SetContent(renderSections(
		func(b *strings.Builder) error {
			return stats.RenderRecent(b, report.Recent, report.GeneratedAt, width)
		},
	))
}
