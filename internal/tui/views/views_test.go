package views

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/f3rmion/sancai/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *engine.Engine {
	d := dict.FromRecords(
		dict.Record{Char: "王", Strokes: dict.Strokes{Kangxi: 4, Traditional: 4, Simplified: 4}},
		dict.Record{Char: "浩", Strokes: dict.Strokes{Kangxi: 11, Traditional: 10, Simplified: 10}},
		dict.Record{Char: "然", Strokes: dict.Strokes{Kangxi: 12, Traditional: 12, Simplified: 12}},
	)
	return engine.New(engine.Static(d), nil)
}

type fakeStore struct {
	saved   []*sancai.Result
	entries []store.Entry
	err     error
}

func (s *fakeStore) Save(_ context.Context, res *sancai.Result) (store.Entry, error) {
	if s.err != nil {
		return store.Entry{}, s.err
	}
	s.saved = append(s.saved, res)
	return store.Entry{ID: "0b9e7c4e-1111-4e2b-9c1d-5a1f0e7d9a10", Result: res}, nil
}

func (s *fakeStore) List(context.Context, int) ([]store.Entry, error) {
	return s.entries, s.err
}

func typeText(m AnalyzeModel, s string) AnalyzeModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m AnalyzeModel, k tea.KeyType) (AnalyzeModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestAnalyzeFlow(t *testing.T) {
	fs := &fakeStore{}
	m := NewAnalyzeModel(testEngine(), fs, nil)

	m = typeText(m, "王")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "浩然")
	assert.Equal(t, sancai.NameInput{Surname: "王", GivenName: "浩然"}, m.Input())

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Analyzing...")

	msg := cmd()
	analyzed, ok := msg.(AnalyzedMsg)
	require.True(t, ok)
	assert.True(t, analyzed.Outcome.OK)

	m, _ = m.Update(msg)
	view := m.View()
	assert.Contains(t, view, "天格 heaven")
	assert.Contains(t, view, "hào rán")
	assert.Contains(t, view, "ctrl+s: save")

	m, cmd = press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	require.Len(t, fs.saved, 1)
	assert.Contains(t, m.View(), "Saved as 0b9e7c4e")
}

func TestAnalyzeShowsFailure(t *testing.T) {
	m := NewAnalyzeModel(testEngine(), nil, nil)
	m = typeText(m, "王")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "龘")

	m, cmd := press(m, tea.KeyEnter)
	m, _ = m.Update(cmd())

	view := m.View()
	assert.Contains(t, view, "not in the standard character table")
	assert.Contains(t, view, "龘")
	assert.NotContains(t, view, "ctrl+s")

	// Nothing to save after a failure.
	_, cmd = press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
}

func TestHistoryView(t *testing.T) {
	grids := sancai.ComputeGrids(4, []int{11, 12})
	res := &sancai.Result{
		Input:        sancai.NameInput{Surname: "王", GivenName: "浩然"},
		Grids:        grids,
		Elements:     sancai.AssignElements(grids),
		ThreeTalents: sancai.Compose(grids),
	}
	fs := &fakeStore{entries: []store.Entry{{
		ID:        "0b9e7c4e-1111-4e2b-9c1d-5a1f0e7d9a10",
		Surname:   "王",
		GivenName: "浩然",
		Result:    res,
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}}}

	m := NewHistoryModel(fs)
	m, _ = m.Update(m.Refresh()())
	assert.Contains(t, m.View(), "王浩然")
	assert.Contains(t, m.View(), "土土火")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "三才 土土火")
	assert.Contains(t, m.View(), "enter: back")
}

func TestHistoryViewStates(t *testing.T) {
	assert.Contains(t, NewHistoryModel(nil).View(), "History is disabled")
	assert.Nil(t, NewHistoryModel(nil).Refresh())

	m := NewHistoryModel(&fakeStore{err: errors.New("disk gone")})
	m, _ = m.Update(m.Refresh()())
	assert.Contains(t, m.View(), "disk gone")

	m = NewHistoryModel(&fakeStore{})
	m, _ = m.Update(m.Refresh()())
	assert.Contains(t, m.View(), "No saved reports yet")
}

func TestAnalyzeCopiesReport(t *testing.T) {
	var copied string
	m := NewAnalyzeModel(testEngine(), nil, nil)
	m.SetCopier(func(_ context.Context, text string) error {
		copied = text
		return nil
	})

	m = typeText(m, "王")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "浩然")
	m, cmd := press(m, tea.KeyEnter)
	m, _ = m.Update(cmd())

	m, cmd = press(m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Contains(t, copied, "三才 土土火")
	assert.Contains(t, m.View(), "Copied to clipboard")

	m, _ = m.Update(clearCopiedMsg{})
	assert.NotContains(t, m.View(), "Copied to clipboard")
}
