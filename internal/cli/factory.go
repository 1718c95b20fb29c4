// Package cli assembles coordinators from command-line options, keeping the
// commands themselves thin.
package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/entity12208/macroforge"
	"github.com/entity12208/macroforge/internal/search"
	"github.com/entity12208/macroforge/pkg/adapters/sim"
	"github.com/entity12208/macroforge/pkg/ports"
	"github.com/entity12208/macroforge/pkg/replay"
)

// SolverOptions collects the flags shared by the solving commands.
type SolverOptions struct {
	Timeout   time.Duration
	MaxFrames int
	MaxTrials int

	// Strategy is "auto", "backtracking", or "randomized".
	Strategy string

	// Seed fixes the randomized strategy when Seeded is set.
	Seed   uint64
	Seeded bool

	// Format is "binary" or "text".
	Format string
}

// EncoderFor resolves the artifact codec for a format flag value.
func EncoderFor(format string) (ports.Encoder, error) {
	switch format {
	case "", "binary":
		return replay.BinaryCodec{}, nil
	case "text":
		return replay.TextCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want binary or text)", format)
	}
}

// NewCoordinator loads the level, builds its simulation, and wires a
// coordinator with standard CLI conventions.
func NewCoordinator(levelPath string, opts SolverOptions, logger *slog.Logger, extra ...macroforge.Option) (*macroforge.Coordinator, *sim.Level, error) {
	level, err := sim.LoadLevelFile(levelPath)
	if err != nil {
		return nil, nil, err
	}

	encoder, err := EncoderFor(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	coordOpts := []macroforge.Option{
		macroforge.WithTimeout(opts.Timeout),
		macroforge.WithMaxFrames(opts.MaxFrames),
		macroforge.WithMaxTrials(opts.MaxTrials),
		macroforge.WithEncoder(encoder),
		macroforge.WithLogger(logger),
	}

	// Levels may carry solver tuning in their metadata block.
	tuning, ok, err := search.TuningFromMetadata(level.Metadata)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		coordOpts = append(coordOpts, macroforge.WithTuning(tuning))
	}

	if opts.Seeded {
		coordOpts = append(coordOpts, macroforge.WithSeed(opts.Seed))
	}

	switch opts.Strategy {
	case "", "auto":
		// Coordinator picks by capability.
	case "backtracking":
		coordOpts = append(coordOpts, macroforge.WithStrategy(macroforge.Backtracking()))
	case "randomized":
		seed := opts.Seed
		if !opts.Seeded {
			seed = uint64(time.Now().UnixNano())
		}
		coordOpts = append(coordOpts, macroforge.WithStrategy(macroforge.Randomized(seed)))
	default:
		return nil, nil, fmt.Errorf("unknown strategy %q (want auto, backtracking, or randomized)", opts.Strategy)
	}

	coordOpts = append(coordOpts, extra...)
	return macroforge.New(sim.NewHopper(level), coordOpts...), level, nil
}
