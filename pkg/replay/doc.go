/*
Package replay serializes decision sequences into portable artifacts.

Two codecs are provided: a compact binary record (the canonical encoding,
suitable for replay-consuming tools) and a human-readable text record listing
the engaged frame indices. Both are injective on valid sequences and satisfy
the round-trip law Decode(Encode(s)) == s.
*/
package replay
