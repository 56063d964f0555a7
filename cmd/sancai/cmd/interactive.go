package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/sancai/internal/tui"
	"github.com/f3rmion/sancai/internal/tui/bigchar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for analyzing names.

Features:
  - Enter surname and given name to see the five grids
  - Elements shown in their traditional colors
  - Large character banner when a CJK font is available
  - Save reports and browse the history

Controls:
  Tab     Switch field
  Enter   Analyze
  Ctrl+S  Save to history
  Esc     Menu / quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	opts := tui.Options{Analyzer: s.engine}

	if st, err := s.openStore(); err != nil {
		s.logger.Warn("History disabled", zap.Error(err))
	} else {
		opts.Store = st
	}

	fonts := append([]string{s.cfg.TUI.FontPath}, bigchar.DefaultFontPaths...)
	opts.Fonts = bigchar.New(fonts...)

	p := tea.NewProgram(
		tui.NewApp(opts),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
