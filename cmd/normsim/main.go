package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "normsim",
		Short: "Pairwise norm-dynamics simulator",
		Long: `normsim runs a toy social-dynamics simulation: paired agents hold
2-component probability-amplitude states pulled toward conformity each
step, coupled pairwise, and measured into discrete outcome counts.

Runs can be archived to SQLite, exported as CSV, and replayed
bit-for-bit from their parameters to verify determinism.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("db", "", "SQLite run archive path (empty = no archive)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newExportCmd(),
		newReplayCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("normsim version %s\n", version)
		},
	}
}
