package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "macroforge",
	Short: "Macroforge searches frame-stepped simulations for winning input sequences",
	Long: `Macroforge drives a deterministic, frame-stepped simulation tick by tick,
searching for a sequence of per-frame control decisions that reaches the
success state, and exports found runs as portable replay files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
