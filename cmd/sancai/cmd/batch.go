package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many names and print one JSON outcome per line",
	Long: `Analyze every name in a file. Each line is either a JSON object
{"surname": "王", "givenName": "浩然"} or the surname and given name
separated by whitespace. Blank lines and lines starting with # are skipped.
Use - to read from stdin.

Outcomes are written as JSON lines in input order.

Example:
  sancai batch names.txt
  cat names.jsonl | sancai batch - --workers 16 > outcomes.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Int("workers", 0, "concurrent analyses (default from config)")
	batchCmd.Flags().StringP("output", "o", "", "write outcomes to a file instead of stdout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	inputs, err := readNames(r)
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = s.cfg.Batch.Workers
	}

	var w io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	outcomes := s.engine.AnalyzeBatch(cmd.Context(), inputs, workers)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	failed := 0
	for _, out := range outcomes {
		if !out.OK {
			failed++
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("writing outcome: %w", err)
		}
	}

	s.logger.Info("Batch complete",
		zap.Int("names", len(outcomes)),
		zap.Int("failed", failed),
	)
	fmt.Fprintf(cmd.ErrOrStderr(), "Analyzed %d names: %d ok, %d failed\n", len(outcomes), len(outcomes)-failed, failed)
	return nil
}

// readNames parses the batch input format.
func readNames(r io.Reader) ([]sancai.NameInput, error) {
	var inputs []sancai.NameInput

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var in sancai.NameInput
		if strings.HasPrefix(line, "{") {
			if !gjson.Valid(line) {
				return nil, fmt.Errorf("line %d: invalid JSON", lineNo)
			}
			in.Surname = gjson.Get(line, "surname").String()
			in.GivenName = gjson.Get(line, "givenName").String()
		} else {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: want \"<surname> <given-name>\", got %q", lineNo, line)
			}
			in.Surname, in.GivenName = fields[0], fields[1]
		}
		inputs = append(inputs, sancai.Normalize(in))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return inputs, nil
}
