package types

import (
	"encoding/binary"
	"fmt"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// subshareDomain separates subshare signatures from any other use of the keys.
const subshareDomain = "sigvss/subshare/v1"

// ErrSignaturePresent is returned when a provenance signature would be
// overwritten.
var ErrSignaturePresent = xerrors.New("signature already present")

// NewPublicParameters returns the conventional parameters for threshold t:
// n = 3t+1 receivers and a composed population of 5t+4 parties.
func NewPublicParameters(t int) PublicParameters {
	return PublicParameters{
		T:      t,
		N:      3*t + 1,
		NTotal: 5*t + 4,
	}
}

// Validate checks that the parameters allow reconstruction: every row needs
// 2t+1 points out of n.
func (pp PublicParameters) Validate() error {
	if pp.T < 1 {
		return xerrors.Errorf("threshold must be at least 1, got %d", pp.T)
	}
	if pp.N < 2*pp.T+1 {
		return xerrors.Errorf("n=%d receivers cannot tolerate t=%d", pp.N, pp.T)
	}
	return nil
}

// String implements fmt.Stringer.
func (pp PublicParameters) String() string {
	return fmt.Sprintf("t=%d,n=%d,ntotal=%d", pp.T, pp.N, pp.NTotal)
}

// RowQuorum is the number of verified points a row needs before it is
// interpolated.
func (pp PublicParameters) RowQuorum() int {
	return 2*pp.T + 1
}

// NewPair returns the canonical (max, min) orientation of a and b.
func NewPair(a, b int) Pair {
	if a < b {
		a, b = b, a
	}
	return Pair{Higher: a, Lower: b}
}

// SigningMessage returns the bytes every party signs for a subshare value:
// a domain tag, the canonical pair and the canonical value serialization.
func SigningMessage(pair Pair, value kyber.Scalar) ([]byte, error) {
	valueBytes, err := value.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal subshare value: %w", err)
	}

	msg := make([]byte, 0, len(subshareDomain)+8+len(valueBytes))
	msg = append(msg, subshareDomain...)
	msg = binary.BigEndian.AppendUint32(msg, uint32(pair.Higher))
	msg = binary.BigEndian.AppendUint32(msg, uint32(pair.Lower))
	msg = append(msg, valueBytes...)

	return msg, nil
}

// NewSubshare returns a subshare without any signature.
func NewSubshare(value kyber.Scalar) Subshare {
	return Subshare{Value: value}
}

// WithDealerSignature returns a copy of s carrying the dealer signature.
func (s Subshare) WithDealerSignature(sig Signature) (Subshare, error) {
	if s.DealerSignature != nil {
		return s, xerrors.Errorf("dealer: %w", ErrSignaturePresent)
	}
	s.DealerSignature = sig
	return s, nil
}

// WithLowerSignature returns a copy of s carrying the lower receiver's
// signature.
func (s Subshare) WithLowerSignature(sig Signature) (Subshare, error) {
	if s.LowerSignature != nil {
		return s, xerrors.Errorf("lower: %w", ErrSignaturePresent)
	}
	s.LowerSignature = sig
	return s, nil
}

// WithHigherSignature returns a copy of s carrying the higher receiver's
// signature.
func (s Subshare) WithHigherSignature(sig Signature) (Subshare, error) {
	if s.HigherSignature != nil {
		return s, xerrors.Errorf("higher: %w", ErrSignaturePresent)
	}
	s.HigherSignature = sig
	return s, nil
}

// IsComplete tells if all three signatures are present. It does not verify
// them.
func (s Subshare) IsComplete() bool {
	return s.DealerSignature != nil && s.LowerSignature != nil && s.HigherSignature != nil
}

// Lookup returns the canonical (max(a,b), min(a,b)) entry of the table.
func (t ShareTable) Lookup(a, b int) (Subshare, bool) {
	pair := NewPair(a, b)

	row, ok := t[pair.Higher]
	if !ok {
		return Subshare{}, false
	}

	s, ok := row[pair.Lower]
	return s, ok
}

// Set stores s under the canonical orientation of (a, b).
func (t ShareTable) Set(a, b int, s Subshare) {
	pair := NewPair(a, b)

	row, ok := t[pair.Higher]
	if !ok {
		row = make(Row)
		t[pair.Higher] = row
	}
	row[pair.Lower] = s
}

// Len returns the number of subshares in the table.
func (t ShareTable) Len() int {
	total := 0
	for _, row := range t {
		total += len(row)
	}
	return total
}
