package main

import (
	"fmt"
	"strings"

	"github.com/entity12208/macroforge"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of macroforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("macroforge version %s\n", strings.TrimSpace(macroforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
