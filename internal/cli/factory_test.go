package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/pkg/replay"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncoderFor(t *testing.T) {
	enc, err := EncoderFor("binary")
	require.NoError(t, err)
	assert.IsType(t, replay.BinaryCodec{}, enc)

	enc, err = EncoderFor("")
	require.NoError(t, err)
	assert.IsType(t, replay.BinaryCodec{}, enc)

	enc, err = EncoderFor("text")
	require.NoError(t, err)
	assert.IsType(t, replay.TextCodec{}, enc)

	_, err = EncoderFor("csv")
	assert.Error(t, err)
}

func TestNewCoordinator(t *testing.T) {
	path := writeLevel(t, "name: gap\nlength: 12\nhazards: [{from: 8, to: 9, height: 0.3}]\n")

	opts := SolverOptions{Timeout: time.Second, MaxFrames: 14}
	coord, level, err := NewCoordinator(path, opts, logging.NewNop())
	require.NoError(t, err)
	defer coord.Close()

	assert.Equal(t, "gap", level.Name)
}

func TestNewCoordinator_UnknownStrategy(t *testing.T) {
	path := writeLevel(t, "name: gap\nlength: 12\n")

	_, _, err := NewCoordinator(path, SolverOptions{Strategy: "bfs"}, logging.NewNop())
	assert.Error(t, err)
}

func TestNewCoordinator_MissingLevel(t *testing.T) {
	_, _, err := NewCoordinator(filepath.Join(t.TempDir(), "nope.yaml"), SolverOptions{}, logging.NewNop())
	assert.Error(t, err)
}

func TestNewCoordinator_BadTuningMetadata(t *testing.T) {
	path := writeLevel(t, "name: gap\nlength: 12\nmetadata:\n  solver:\n    min_trial_frames: [1, 2]\n")

	_, _, err := NewCoordinator(path, SolverOptions{}, logging.NewNop())
	assert.Error(t, err)
}
