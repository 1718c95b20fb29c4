package main

import (
	"context"
	"fmt"
	"os"

	"github.com/entity12208/macroforge/internal/cli"
	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <level.yaml> <artifact>",
	Short: "Replay an exported artifact against a level",
	Long: `Decodes the artifact and replays it frame-by-frame against a freshly
initialized simulation, confirming that the recorded run still reaches the
success state.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(logLevel))

		opts := cli.SolverOptions{}
		opts.Format, _ = cmd.Flags().GetString("format")

		coord, level, err := cli.NewCoordinator(args[0], opts, logger)
		if err != nil {
			return err
		}
		defer coord.Close()

		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read artifact: %w", err)
		}

		ok, err := coord.Verify(context.Background(), data)
		if err != nil {
			return err
		}

		printer := tui.NewStatusPrinter()
		if !ok {
			printer.Failure(fmt.Sprintf("Replay does not complete %q.", level.Name))
			os.Exit(1)
		}
		printer.Success(fmt.Sprintf("Replay completes %q.", level.Name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("format", "binary", "Artifact format (binary, text)")
}
