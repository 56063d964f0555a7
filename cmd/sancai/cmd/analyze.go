package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/report"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <surname> <given-name>",
	Short: "Compute the five grids and Three-Talent triple of a name",
	Long: `Analyze a Chinese name given as surname and given name.

The surname may be one or two characters (欧阳 is summed as one surname).
The given name has one or two characters. Every character must be in the
stroke dictionary; missing ones are listed together.

Example:
  sancai analyze 王 浩然
  sancai analyze 欧阳 浩 --json
  sancai analyze 李 云 --save`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "print the outcome as JSON")
	analyzeCmd.Flags().Bool("save", false, "save a successful report to the history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	in := sancai.Normalize(sancai.NameInput{Surname: args[0], GivenName: args[1]})
	res, err := s.engine.Analyze(cmd.Context(), in)
	out := engine.Assemble(in, res, err)

	w := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding outcome: %w", err)
		}
		fmt.Fprintln(w, string(data))
	} else {
		text, err := report.NewRenderer().RenderOutcome(out)
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
	}

	if !out.OK {
		return errReported
	}

	if save {
		st, err := s.openStore()
		if err != nil {
			return err
		}
		entry, err := st.Save(cmd.Context(), out.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved as %s\n", entry.ID)
	}
	return nil
}
