package search

import (
	"fmt"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// MetadataKey is the level-metadata key holding randomized-strategy tuning
// overrides.
const MetadataKey = "solver"

// TuningFromMetadata extracts trial tuning from a level's free-form metadata
// block, if present. The second return value reports whether the block
// existed. Levels without a block fall back to the built-in defaults.
func TuningFromMetadata(metadata map[string]any) (domain.TrialTuning, bool, error) {
	var tuning domain.TrialTuning
	raw, ok := metadata[MetadataKey]
	if !ok {
		return tuning, false, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &tuning,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return tuning, false, fmt.Errorf("failed to build tuning decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return tuning, false, fmt.Errorf("invalid %q metadata block: %w", MetadataKey, err)
	}
	return tuning, true, nil
}
