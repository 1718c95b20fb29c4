package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/entity12208/macroforge/internal/cli"
	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <level.yaml>",
	Short: "Search a level for a winning input sequence",
	Long: `Loads the level, runs the search under the configured budget, and on
success writes the replay artifact to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(logLevel))

		opts := cli.SolverOptions{}
		opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
		opts.MaxFrames, _ = cmd.Flags().GetInt("max-frames")
		opts.MaxTrials, _ = cmd.Flags().GetInt("max-trials")
		opts.Strategy, _ = cmd.Flags().GetString("strategy")
		opts.Format, _ = cmd.Flags().GetString("format")
		if cmd.Flags().Changed("seed") {
			opts.Seed, _ = cmd.Flags().GetUint64("seed")
			opts.Seeded = true
		}
		outDir, _ := cmd.Flags().GetString("out")

		coord, level, err := cli.NewCoordinator(args[0], opts, logger)
		if err != nil {
			return err
		}
		defer coord.Close()

		printer := tui.NewStatusPrinter()
		progress, cancel := coord.Subscribe()
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range progress {
				printer.Progress(msg)
			}
		}()

		outcome, err := coord.Solve(context.Background())
		cancel()
		wg.Wait()
		if err != nil {
			return err
		}

		if !outcome.IsFound() {
			printer.Failure(fmt.Sprintf("No run found for %q (%s).", level.Name, outcome.Reason))
			os.Exit(1)
		}

		artifact, err := coord.Export(context.Background(), level.Name)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, artifact.Filename)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
		printer.Success(fmt.Sprintf("Exported: %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Duration("timeout", 40*time.Second, "Wall-clock search budget")
	solveCmd.Flags().Int("max-frames", 7200, "Maximum run length in frames")
	solveCmd.Flags().Int("max-trials", 2000, "Maximum trials for the randomized strategy")
	solveCmd.Flags().String("strategy", "auto", "Search strategy (auto, backtracking, randomized)")
	solveCmd.Flags().Uint64("seed", 0, "Random seed for the randomized strategy")
	solveCmd.Flags().String("format", "binary", "Artifact format (binary, text)")
	solveCmd.Flags().StringP("out", "o", ".", "Output directory for the artifact")
}
