// Package main is the entry point for the sancai CLI.
package main

import (
	"os"

	"github.com/f3rmion/sancai/cmd/sancai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
