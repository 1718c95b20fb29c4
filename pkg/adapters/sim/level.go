package sim

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Hazard is a ground obstacle spanning [From, To] along the track. Crossing
// it below Height is fatal.
type Hazard struct {
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Height float64 `yaml:"height"`
}

// Level describes a hopper world: a track of a given length with hazards to
// clear. Metadata is a free-form block; the solver recognizes a "solver" key
// with trial-tuning overrides.
type Level struct {
	Name     string         `yaml:"name"`
	Length   float64        `yaml:"length"`
	Hazards  []Hazard       `yaml:"hazards,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

// Validate checks the level for structural problems.
func (l *Level) Validate() error {
	if l.Length <= 0 {
		return fmt.Errorf("level %q: length must be positive, got %v", l.Name, l.Length)
	}
	for i, h := range l.Hazards {
		if h.To < h.From {
			return fmt.Errorf("level %q: hazard %d has to < from", l.Name, i)
		}
		if h.Height <= 0 {
			return fmt.Errorf("level %q: hazard %d has non-positive height", l.Name, i)
		}
	}
	return nil
}

// LoadLevel parses a YAML level definition.
func LoadLevel(r io.Reader) (*Level, error) {
	var level Level
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&level); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

// LoadLevelFile reads and parses a level from disk.
func LoadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file: %w", err)
	}
	defer f.Close()
	return LoadLevel(f)
}
