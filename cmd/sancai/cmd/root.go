// Package cmd contains all CLI commands for sancai.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/sancai/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// errReported marks failures whose explanation was already printed.
var errReported = errors.New("analysis failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sancai",
	Short: "Three-Talent Five-Grid (三才五格) analysis of Chinese names",
	Long: `sancai derives the five grids (五格) of a Chinese personal name from the
Kangxi stroke counts of its characters, and the Three-Talent (三才)
element triple of the heaven, human and earth grids.

  天格 heaven = surname strokes + 1
  人格 human  = surname strokes + first given character
  地格 earth  = given name strokes (single character: + 1)
  总格 total  = all strokes
  外格 outer  = total - human + 1

Each grid maps to an element by its last digit:
  1,2 wood 木   3,4 fire 火   5,6 earth 土   7,8 metal 金   9,0 water 水

Running 'sancai' without arguments launches the interactive TUI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/sancai)")
	rootCmd.PersistentFlags().String("dictionary", "", "stroke dictionary file or http(s) URL")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output (same as --log-level debug)")

	viper.BindPFlag("dictionary", rootCmd.PersistentFlags().Lookup("dictionary"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads .env and environment variables.
func initConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	// SANCAI_DICTIONARY, SANCAI_LOG_LEVEL, SANCAI_REDIS_ADDR, ...
	viper.SetEnvPrefix("SANCAI")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}
