package ports

import "github.com/entity12208/macroforge/pkg/domain"

// Encoder is a pluggable replay serializer: a deterministic, pure
// transformation between decision sequences and byte records.
//
// Implementations must be injective on valid sequences (no two distinct
// sequences encode identically) and satisfy the round-trip law
// Decode(Encode(s)) == s.
type Encoder interface {
	Encode(seq domain.DecisionSequence) ([]byte, error)
	Decode(data []byte) (domain.DecisionSequence, error)

	// Extension is the suggested filename extension, including the dot.
	Extension() string
}
