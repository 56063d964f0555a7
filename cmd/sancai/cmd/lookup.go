package cmd

import (
	"fmt"
	"strings"

	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/pinyin"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <characters>",
	Short: "Show the stroke counts the analysis would use",
	Long: `Look up characters in the stroke dictionary and display:
  - Pinyin reading(s)
  - Kangxi, traditional and simplified stroke counts
  - The count the analysis uses and where it came from

Example:
  sancai lookup 浩
  sancai lookup 欧阳浩然`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := s.loader.Load(cmd.Context())
	if err != nil {
		return err
	}

	parser := pinyin.NewParser()
	resolver := engine.NewResolver(d)
	w := cmd.OutOrStdout()

	input := sancai.Normalize(sancai.NameInput{Surname: strings.Join(args, "")}).Surname
	fmt.Fprintf(w, "Looking up: %s (dictionary %s, %d entries)\n\n", input, d.Version(), d.Size())

	for _, r := range input {
		char := string(r)
		fmt.Fprintf(w, "Character: %s\n", char)

		if readings := parser.GetPinyin(char); len(readings) > 0 {
			fmt.Fprintf(w, "  Pinyin:      %s\n", strings.Join(readings, ", "))
		}

		if rec, ok := d.Lookup(char); ok {
			fmt.Fprintf(w, "  Kangxi:      %s\n", strokeField(rec.Strokes.Kangxi))
			fmt.Fprintf(w, "  Traditional: %s\n", strokeField(rec.Strokes.Traditional))
			fmt.Fprintf(w, "  Simplified:  %s\n", strokeField(rec.Strokes.Simplified))
		} else if !sancai.IsChinese(r) {
			fmt.Fprintf(w, "  (not a Chinese character)\n")
		}

		if cs, ok := resolver.Resolve(char); ok {
			fmt.Fprintf(w, "  Used:        %d (%s)\n", cs.Strokes, cs.Source)
		} else {
			fmt.Fprintf(w, "  Used:        (unresolved)\n")
		}
		fmt.Fprintln(w)
	}
	return nil
}

func strokeField(n int) string {
	if n <= 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
