package types

import (
	"go.dedis.ch/kyber/v3"
)

// PublicParameters are the process-wide parameters of one protocol run.
// T is the corruption threshold, N the number of receivers and NTotal the
// population of the composed randomness extraction (5T+4).
type PublicParameters struct {
	T      int
	N      int
	NTotal int
}

// Pair identifies the unordered pair of receivers a subshare value belongs to,
// stored canonically with Higher >= Lower.
type Pair struct {
	Higher int
	Lower  int
}

// Signature is the serialized form of a signature produced by a signer.
type Signature []byte

// Subshare is one field value together with its signature provenance:
// the dealer, the lower-indexed receiver and the higher-indexed receiver of
// the pair the value represents. Signatures are only ever added.
type Subshare struct {
	Value           kyber.Scalar
	DealerSignature Signature
	LowerSignature  Signature
	HigherSignature Signature
}

// Row maps a column index to the subshare held for it.
type Row map[int]Subshare

// ShareTable maps a row index to its row; it is the n×n evaluation grid of the
// bivariate polynomial, or its canonical lower triangle once receivers forward
// their subshares.
type ShareTable map[int]Row
