package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/sancai/internal/report"
	"github.com/f3rmion/sancai/internal/store"
)

// HistoryLimit is how many saved reports the history view shows.
const HistoryLimit = 50

// Lister reads saved reports. *store.Store implements it.
type Lister interface {
	List(ctx context.Context, limit int) ([]store.Entry, error)
}

// HistoryLoadedMsg carries the saved reports.
type HistoryLoadedMsg struct {
	Entries []store.Entry
	Err     error
}

// HistoryModel lists saved reports.
type HistoryModel struct {
	lister   Lister
	renderer *report.Renderer

	entries  []store.Entry
	selected int
	detail   bool
	err      error

	width  int
	height int
}

// NewHistoryModel creates the history view. lister may be nil when no store is configured.
func NewHistoryModel(lister Lister) HistoryModel {
	return HistoryModel{lister: lister, renderer: report.NewRenderer()}
}

// SetSize updates the view dimensions.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh reloads the list.
func (m HistoryModel) Refresh() tea.Cmd {
	if m.lister == nil {
		return nil
	}
	lister := m.lister
	return func() tea.Msg {
		entries, err := lister.List(context.Background(), HistoryLimit)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryLoadedMsg:
		m.entries, m.err = msg.Entries, msg.Err
		if m.selected >= len(m.entries) {
			m.selected = max(len(m.entries)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "enter":
			m.detail = !m.detail && len(m.entries) > 0
		case "r":
			return m, m.Refresh()
		}
	}
	return m, nil
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	switch {
	case m.lister == nil:
		b.WriteString(mutedStyle.Render("History is disabled: no store configured."))
		return b.String()
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		return b.String()
	case len(m.entries) == 0:
		b.WriteString(mutedStyle.Render("No saved reports yet. Press ctrl+s after an analysis to save one."))
		return b.String()
	}

	if m.detail {
		e := m.entries[m.selected]
		text, err := m.renderer.Render(e.Result)
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
		} else {
			b.WriteString(boxStyle.Render(strings.TrimRight(text, "\n")))
		}
		b.WriteString("\n" + helpStyle.Render("enter: back"))
		return b.String()
	}

	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %-6s %s  %s",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Surname+e.GivenName,
			e.Result.ThreeTalents,
			e.ID[:min(8, len(e.ID))],
		)
		if i == m.selected {
			b.WriteString(rowActiveStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + helpStyle.Render("j/k: navigate • enter: details • r: refresh"))
	return b.String()
}
