package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

const textHeader = "macroforge v1"

// TextCodec renders a sequence as its engaged frame indices: a header line
// carrying the frame count, then one space-delimited line of indices.
//
//	macroforge v1 8
//	3
//
// The count line preserves trailing idle frames, keeping the encoding
// injective.
type TextCodec struct{}

// Encode implements ports.Encoder.
func (TextCodec) Encode(seq domain.DecisionSequence) ([]byte, error) {
	if len(seq) > maxDecodeFrames {
		return nil, fmt.Errorf("sequence too long to encode: %d frames", len(seq))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", textHeader, len(seq))
	for i, f := range seq.EngagedFrames() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(f))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Decode implements ports.Encoder.
func (TextCodec) Decode(data []byte) (domain.DecisionSequence, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || len(lines) > 2 {
		return nil, fmt.Errorf("%w: expected header and index lines", ErrBadRecord)
	}

	var count int
	if _, err := fmt.Sscanf(lines[0], textHeader+" %d", &count); err != nil {
		return nil, fmt.Errorf("%w: bad header %q", ErrBadRecord, lines[0])
	}
	// Compare in the wide type; converting first would let counts that are
	// small modulo 2^32 slip past the guard.
	if count < 0 || count > maxDecodeFrames {
		return nil, fmt.Errorf("%w: frame count %d out of range", ErrBadRecord, count)
	}

	frames := []int{}
	if len(lines) == 2 && lines[1] != "" {
		for _, field := range strings.Fields(lines[1]) {
			f, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: bad frame index %q", ErrBadRecord, field)
			}
			if f < 0 || f >= count {
				return nil, fmt.Errorf("%w: frame index %d outside [0, %d)", ErrBadRecord, f, count)
			}
			frames = append(frames, f)
		}
	}
	return domain.FromEngagedFrames(count, frames), nil
}

// Extension implements ports.Encoder.
func (TextCodec) Extension() string { return ".txt" }

var _ ports.Encoder = TextCodec{}
