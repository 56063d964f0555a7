package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/f3rmion/sancai/internal/report"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved reports",
	Long: `List reports saved with 'sancai analyze --save' or from the TUI,
newest first.

Example:
  sancai history
  sancai history --limit 5
  sancai history show <id>`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().Int("limit", 20, "number of reports to list (0 for all)")
	historyShowCmd.Flags().Bool("json", false, "print the stored entry as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.openStore()
	if err != nil {
		return err
	}

	entries, err := st.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved reports.")
		return nil
	}

	// tabwriter counts runes, so the double-width columns go in the trailing cell.
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSAVED\tDICTIONARY\t%s  NAME\n", runewidth.FillRight("三才", 6))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s  %s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.DictVersion,
			runewidth.FillRight(e.Result.ThreeTalents.String(), 6),
			e.Surname+" "+e.GivenName,
		)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.openStore()
	if err != nil {
		return err
	}

	e, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	text, err := report.NewRenderer().Render(e.Result)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s as %s\n\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.ID)
	fmt.Fprint(w, text)
	return nil
}
