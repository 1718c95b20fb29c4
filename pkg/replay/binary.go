package replay

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// Binary record layout:
//
//	bytes 0..3   magic "MFR1"
//	bytes 4..7   frame count, big-endian uint32
//	bytes 8..    packed bitset, LSB-first within each byte, one bit per frame
//
// The explicit frame count keeps the encoding injective: two sequences that
// differ only in trailing idle frames produce different records.
const binaryMagic = "MFR1"

// ErrBadRecord is returned when a byte record cannot be decoded.
var ErrBadRecord = errors.New("malformed replay record")

// maxDecodeFrames bounds the frame count of any record, in both directions:
// Decode rejects hostile counts before allocating, Encode refuses sequences
// it could not round-trip.
const maxDecodeFrames = 1 << 24

// BinaryCodec is the canonical encoder. Extension ".gdr" matches what
// replay-consuming tools expect.
type BinaryCodec struct{}

// Encode implements ports.Encoder.
func (BinaryCodec) Encode(seq domain.DecisionSequence) ([]byte, error) {
	if len(seq) > maxDecodeFrames {
		return nil, fmt.Errorf("sequence too long to encode: %d frames", len(seq))
	}
	out := make([]byte, 8+(len(seq)+7)/8)
	copy(out, binaryMagic)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(seq)))
	for i, in := range seq {
		if in {
			out[8+i/8] |= 1 << (i % 8)
		}
	}
	return out, nil
}

// Decode implements ports.Encoder. It rejects trailing bytes and set bits
// beyond the declared frame count, so every valid record has exactly one
// preimage.
func (BinaryCodec) Decode(data []byte) (domain.DecisionSequence, error) {
	if len(data) < 8 || string(data[:4]) != binaryMagic {
		return nil, fmt.Errorf("%w: missing header", ErrBadRecord)
	}
	count := binary.BigEndian.Uint32(data[4:8])
	if count > maxDecodeFrames {
		return nil, fmt.Errorf("%w: frame count %d too large", ErrBadRecord, count)
	}
	n := int(count)
	want := 8 + (n+7)/8
	if len(data) != want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadRecord, want, len(data))
	}

	seq := make(domain.DecisionSequence, n)
	for i := range seq {
		seq[i] = data[8+i/8]&(1<<(i%8)) != 0
	}
	// Bits past the frame count must be zero.
	if n%8 != 0 {
		last := data[len(data)-1]
		if last>>(n%8) != 0 {
			return nil, fmt.Errorf("%w: set bits beyond frame count", ErrBadRecord)
		}
	}
	return seq, nil
}

// Extension implements ports.Encoder.
func (BinaryCodec) Extension() string { return ".gdr" }

var _ ports.Encoder = BinaryCodec{}
