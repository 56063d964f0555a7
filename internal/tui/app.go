package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/sancai/internal/store"
	"github.com/f3rmion/sancai/internal/tui/bigchar"
	"github.com/f3rmion/sancai/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewAnalyze ViewType = iota
	ViewHistory
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	Icon     string
	View     ViewType
	Shortcut string
}

// Options wires the app to the rest of the program.
type Options struct {
	Analyzer views.Analyzer
	Store    *store.Store      // nil disables saving and history
	Fonts    *bigchar.Renderer // nil renders names as plain text
}

// AppModel is the main TUI model
type AppModel struct {
	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	analyzeView views.AnalyzeModel
	historyView views.HistoryModel

	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(opts Options) AppModel {
	var (
		saver  views.Saver
		lister views.Lister
	)
	if opts.Store != nil {
		saver, lister = opts.Store, opts.Store
	}

	return AppModel{
		sidebarWidth: 18,
		currentView:  ViewAnalyze,
		menuItems: []MenuItem{
			{Label: "Analyze", Icon: "名", View: ViewAnalyze, Shortcut: "1"},
			{Label: "History", Icon: "史", View: ViewHistory, Shortcut: "2"},
		},
		analyzeView: views.NewAnalyzeModel(opts.Analyzer, saver, opts.Fonts),
		historyView: views.NewHistoryModel(lister),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.historyView.Refresh())
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		}

		// Plain keys belong to the text inputs unless the sidebar has focus.
		if m.sidebarActive {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "1":
				return m.switchTo(ViewAnalyze)
			case "2":
				return m.switchTo(ViewHistory)
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
				return m, nil
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
				return m, nil
			case "enter", "l", "right", "tab":
				return m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2
		m.analyzeView.SetSize(contentWidth, contentHeight)
		m.historyView.SetSize(contentWidth, contentHeight)
		return m, nil

	case views.AnalyzedMsg:
		var cmd tea.Cmd
		m.analyzeView, cmd = m.analyzeView.Update(msg)
		return m, cmd

	case views.SavedMsg:
		var cmd tea.Cmd
		m.analyzeView, cmd = m.analyzeView.Update(msg)
		return m, tea.Batch(cmd, m.historyView.Refresh())

	case views.HistoryLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	}

	if m.sidebarActive {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewAnalyze:
		m.analyzeView, cmd = m.analyzeView.Update(msg)
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) switchTo(v ViewType) (tea.Model, tea.Cmd) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
	if v == ViewHistory {
		return m, m.historyView.Refresh()
	}
	return m, nil
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.currentView {
	case ViewAnalyze:
		content = m.analyzeView.View()
	case ViewHistory:
		content = m.historyView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  三才 sancai  "), "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Icon + " " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Current view, not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}
		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("esc Menu  ? Help"))

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	row := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(desc) + "\n"
	}

	help := HelpTitleStyle.Render("三才五格 - Name Analysis") + "\n\n"

	help += HelpSectionStyle.Render("Menu (esc)") + "\n"
	help += row("1-2", "Switch views")
	help += row("j/k", "Move selection")
	help += row("enter", "Open view")
	help += row("q / esc", "Quit")

	help += HelpSectionStyle.Render("Analyze View") + "\n"
	help += row("tab", "Switch field")
	help += row("enter", "Analyze name")
	help += row("ctrl+s", "Save to history")

	help += HelpSectionStyle.Render("History View") + "\n"
	help += row("j/k ↑/↓", "Navigate reports")
	help += row("enter", "Show details")
	help += row("r", "Refresh")

	help += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(help))
}
