package statsui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/dictstat/internal/model"
)

const (
	filterSince = iota
	filterMode
	filterLast
)

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Mode: "),
		newFilterInput("Last: "),
	}
	m.filterInputs[filterMode].Placeholder = "transcribe, greppy, cleanup, plan"
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if m.cfg.Since != nil {
		m.filterInputs[filterSince].SetValue(m.cfg.Since.In(m.opts.Location).Format("2006-01-02"))
	} else {
		m.filterInputs[filterSince].SetValue("")
	}
	m.filterInputs[filterMode].SetValue(string(m.cfg.Mode))
	if m.cfg.Last > 0 {
		m.filterInputs[filterLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[filterLast].SetValue("")
	}
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		m.updateLayout()
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.updateLayout()
		return m, m.requestRefresh()
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

// applyFilter validates the form and updates the filters. Goals and the top
// word limit are kept.
func (m *Model) applyFilter() error {
	var since *time.Time
	if input := strings.TrimSpace(m.filterInputs[filterSince].Value()); input != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input, m.opts.Location)
		if err != nil {
			return errors.New("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	mode := model.Mode(strings.ToLower(strings.TrimSpace(m.filterInputs[filterMode].Value())))
	if strings.ContainsAny(string(mode), " \t") {
		return errors.New("invalid mode (use a single word)")
	}

	last := 0
	if input := strings.TrimSpace(m.filterInputs[filterLast].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 0 {
			return errors.New("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	m.cfg.Since = since
	m.cfg.Mode = mode
	m.cfg.Last = last
	return nil
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}
