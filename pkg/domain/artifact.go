package domain

// Artifact is the exported encoding of a found run: a byte record plus a
// suggested filename. Created only after a successful search; immutable.
type Artifact struct {
	// Data is the encoded decision sequence.
	Data []byte

	// Filename is the suggested name for persisting the artifact, derived
	// from the level identity and a timestamp. Writing it to storage is the
	// caller's responsibility.
	Filename string
}
