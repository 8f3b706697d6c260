package types

// WireSubshare is the serialized form of a Subshare. Missing signatures are
// nil.
type WireSubshare struct {
	Value           []byte
	DealerSignature []byte
	LowerSignature  []byte
	HigherSignature []byte
}

// RowMessage carries the dealer's row of signed subshares to one receiver.
type RowMessage struct {
	Receiver  int
	Subshares map[int]WireSubshare
}

// SubshareMessage carries a doubly signed subshare from the lower receiver of
// a pair to the higher one.
type SubshareMessage struct {
	From     int
	To       int
	Subshare WireSubshare
}

// TripleRowMessage carries the triply signed subshares a receiver completed,
// keyed by the lower index of each pair, to a reconstructor.
type TripleRowMessage struct {
	From      int
	Subshares map[int]WireSubshare
}

// AggregateMessage is broadcast by a reconstructor with every verified row it
// admitted.
type AggregateMessage struct {
	Reconstructor int
	Rows          map[int]map[int]WireSubshare
}
