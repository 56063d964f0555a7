package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/sancai/internal/sancai"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	bigCharStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(1, 2)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436")).
			Padding(1, 4).
			Margin(1, 0)

	pinyinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee")).
			Width(6)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Width(12)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	rowActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436")).
			Padding(0, 1)
)

// elementColors follows the traditional five-phase colors.
var elementColors = map[sancai.Element]lipgloss.Color{
	sancai.Wood:  lipgloss.Color("#6ab04c"),
	sancai.Fire:  lipgloss.Color("#ff6b6b"),
	sancai.Earth: lipgloss.Color("#e1b12c"),
	sancai.Metal: lipgloss.Color("#dcdde1"),
	sancai.Water: lipgloss.Color("#4a69bd"),
}

func elementStyle(e sancai.Element) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(elementColors[e])
}
