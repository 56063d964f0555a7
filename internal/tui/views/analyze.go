// Package views provides the individual views for the sancai TUI.
package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/sancai/internal/clipboard"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/pinyin"
	"github.com/f3rmion/sancai/internal/report"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/f3rmion/sancai/internal/store"
	"github.com/f3rmion/sancai/internal/tui/bigchar"
)

// Analyzer runs one analysis. *engine.Engine implements it.
type Analyzer interface {
	Analyze(ctx context.Context, in sancai.NameInput) (*sancai.Result, error)
}

// Saver records a result in the history. *store.Store implements it.
type Saver interface {
	Save(ctx context.Context, res *sancai.Result) (store.Entry, error)
}

// AnalyzedMsg carries a finished analysis.
type AnalyzedMsg struct {
	Outcome engine.Outcome
}

// SavedMsg reports the result of saving to history.
type SavedMsg struct {
	Entry store.Entry
	Err   error
}

type copiedMsg struct {
	err error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

const (
	fieldSurname = iota
	fieldGivenName
)

// AnalyzeModel is the name analysis view.
type AnalyzeModel struct {
	inputs [2]textinput.Model
	focus  int

	analyzer Analyzer
	saver    Saver
	big      *bigchar.Renderer
	parser   *pinyin.Parser
	renderer *report.Renderer
	clip     func(ctx context.Context, text string) error

	outcome   *engine.Outcome
	analyzing bool
	saved     string
	saveErr   error
	copied    bool
	copyErr   error

	width  int
	height int
}

// NewAnalyzeModel creates the analysis view. saver and big may be nil.
func NewAnalyzeModel(analyzer Analyzer, saver Saver, big *bigchar.Renderer) AnalyzeModel {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 20
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))
		return ti
	}

	m := AnalyzeModel{
		analyzer: analyzer,
		saver:    saver,
		big:      big,
		parser:   pinyin.NewParser(),
		renderer: report.NewRenderer(),
		clip:     clipboard.Write,
	}
	m.inputs[fieldSurname] = newInput("王 / 欧阳", 8)
	m.inputs[fieldGivenName] = newInput("浩然", 8)
	m.inputs[fieldSurname].Focus()
	return m
}

// SetSize updates the view dimensions.
func (m *AnalyzeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetCopier replaces the clipboard writer.
func (m *AnalyzeModel) SetCopier(clip func(ctx context.Context, text string) error) {
	m.clip = clip
}

// Input returns the normalized contents of both fields.
func (m AnalyzeModel) Input() sancai.NameInput {
	return sancai.Normalize(sancai.NameInput{
		Surname:   m.inputs[fieldSurname].Value(),
		GivenName: m.inputs[fieldGivenName].Value(),
	})
}

// Update handles messages.
func (m AnalyzeModel) Update(msg tea.Msg) (AnalyzeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.setFocus(1 - m.focus)
			return m, nil
		case "enter":
			if m.analyzing {
				return m, nil
			}
			m.analyzing = true
			m.saved = ""
			m.saveErr = nil
			return m, m.analyze(m.Input())
		case "ctrl+s":
			if m.saver != nil && m.outcome != nil && m.outcome.OK {
				return m, m.save(m.outcome.Result)
			}
			return m, nil
		case "ctrl+y":
			if m.outcome != nil {
				return m, m.copyReport(*m.outcome)
			}
			return m, nil
		}

	case AnalyzedMsg:
		m.analyzing = false
		out := msg.Outcome
		m.outcome = &out
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.saveErr = msg.Err
		} else {
			m.saved = msg.Entry.ID
		}
		return m, nil

	case copiedMsg:
		m.copyErr = msg.err
		m.copied = msg.err == nil
		return m, clearCopiedAfter(2 * time.Second)

	case clearCopiedMsg:
		m.copied = false
		m.copyErr = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AnalyzeModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m AnalyzeModel) analyze(in sancai.NameInput) tea.Cmd {
	analyzer := m.analyzer
	return func() tea.Msg {
		res, err := analyzer.Analyze(context.Background(), in)
		return AnalyzedMsg{Outcome: engine.Assemble(in, res, err)}
	}
}

func (m AnalyzeModel) copyReport(out engine.Outcome) tea.Cmd {
	clip, renderer := m.clip, m.renderer
	return func() tea.Msg {
		text, err := renderer.RenderOutcome(out)
		if err == nil {
			err = clip(context.Background(), text)
		}
		return copiedMsg{err: err}
	}
}

func (m AnalyzeModel) save(res *sancai.Result) tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		entry, err := saver.Save(context.Background(), res)
		return SavedMsg{Entry: entry, Err: err}
	}
}

// View renders the analysis view.
func (m AnalyzeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("三才五格  Name Analysis"))
	b.WriteString("\n\n")
	b.WriteString(inputLabelStyle.Render("Surname") + m.inputs[fieldSurname].View() + "\n")
	b.WriteString(inputLabelStyle.Render("Given name") + m.inputs[fieldGivenName].View() + "\n")

	switch {
	case m.analyzing:
		b.WriteString("\n" + loadingStyle.Render("Analyzing...") + "\n")
	case m.outcome != nil && m.outcome.OK:
		b.WriteString(m.renderResult(m.outcome.Result))
	case m.outcome != nil:
		b.WriteString("\n" + errorStyle.Render(report.RenderFailure(*m.outcome)))
	}

	if m.saved != "" {
		b.WriteString("\n" + savedStyle.Render("Saved as "+m.saved) + "\n")
	}
	if m.saveErr != nil {
		b.WriteString("\n" + errorStyle.Render("Save failed: "+m.saveErr.Error()) + "\n")
	}
	if m.copied {
		b.WriteString("\n" + savedStyle.Render("Copied to clipboard") + "\n")
	}
	if m.copyErr != nil {
		b.WriteString("\n" + errorStyle.Render("Copy failed: "+m.copyErr.Error()) + "\n")
	}

	help := []string{"tab: switch field", "enter: analyze"}
	if m.outcome != nil {
		help = append(help, "ctrl+y: copy")
	}
	if m.saver != nil && m.outcome != nil && m.outcome.OK {
		help = append(help, "ctrl+s: save")
	}
	b.WriteString("\n" + helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}

func (m AnalyzeModel) renderResult(res *sancai.Result) string {
	var b strings.Builder
	name := res.Input.Surname + res.Input.GivenName

	b.WriteString("\n")
	b.WriteString(m.renderName(name))
	b.WriteString("\n")
	b.WriteString(pinyinStyle.Render(m.parser.Romanize(name)))
	b.WriteString("\n\n")

	var strokes []string
	for _, cs := range append(append([]sancai.CharStrokes{}, res.Surname...), res.GivenName...) {
		strokes = append(strokes, fmt.Sprintf("%s %d (%s)", cs.Char, cs.Strokes, cs.Source))
	}
	b.WriteString(mutedStyle.Render(strings.Join(strokes, "   ")))
	b.WriteString("\n\n")

	g, e := res.Grids, res.Elements
	rows := []struct {
		label string
		value int
		elem  sancai.Element
	}{
		{"天格 heaven", g.Heaven, e.Heaven},
		{"人格 human", g.Human, e.Human},
		{"地格 earth", g.Earth, e.Earth},
		{"总格 total", g.Total, e.Total},
		{"外格 outer", g.Outer, e.Outer},
	}
	var grid []string
	for _, r := range rows {
		grid = append(grid, labelStyle.Render(r.label)+
			valueStyle.Render(fmt.Sprint(r.value))+
			elementStyle(r.elem).Render(r.elem.Hanzi()+" "+string(r.elem)))
	}

	var talents strings.Builder
	for _, el := range res.ThreeTalents {
		talents.WriteString(elementStyle(el).Render(el.Hanzi()))
	}
	grid = append(grid, "", labelStyle.Render("三才")+talents.String())

	b.WriteString(boxStyle.Render(strings.Join(grid, "\n")))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("dictionary " + res.DictVersion))
	b.WriteString("\n")
	return b.String()
}

// renderName draws the name as block art when a CJK font is available.
func (m AnalyzeModel) renderName(name string) string {
	if !m.big.Available() {
		return nameStyle.Render(name)
	}

	var blocks []string
	for _, r := range name {
		if art := m.big.Render(string(r), 16, 8); art != "" {
			blocks = append(blocks, bigCharStyle.Render(art))
		}
	}
	if len(blocks) == 0 {
		return nameStyle.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
