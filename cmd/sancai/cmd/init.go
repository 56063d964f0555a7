package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/sancai/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sancai configuration",
	Long: `Initialize the sancai config directory with a default config.yaml.

The file configures:
  - dictionary  (stroke dictionary file or URL, load timeout)
  - log         (level and optional log file)
  - store       (history database path)
  - cache       (optional Redis result cache)
  - batch       (worker count)
  - tui         (CJK font for the name banner)

Put the stroke dictionary at <config dir>/dictionary.json or point
dictionary.location at it.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Initialized sancai configuration in %s\n\n", configDir)
	fmt.Fprintf(w, "  Created %s\n\n", config.FileName)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintf(w, "  1. Copy the stroke dictionary to %s\n", filepath.Join(configDir, dictionaryFile))
	fmt.Fprintln(w, "  2. Run 'sancai lookup 浩' to check a character")
	fmt.Fprintln(w, "  3. Run 'sancai analyze 王 浩然' to analyze a name")
	return nil
}
