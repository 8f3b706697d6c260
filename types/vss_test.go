package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"golang.org/x/xerrors"
)

var suite = edwards25519.NewBlakeSHA256Ed25519()

func Test_PublicParameters(t *testing.T) {
	pp := NewPublicParameters(7)
	require.Equal(t, 22, pp.N)
	require.Equal(t, 39, pp.NTotal)
	require.Equal(t, 15, pp.RowQuorum())
	require.NoError(t, pp.Validate())

	require.Error(t, PublicParameters{T: 0, N: 1}.Validate())
	require.Error(t, PublicParameters{T: 2, N: 4}.Validate())
	require.NoError(t, PublicParameters{T: 2, N: 5}.Validate())
}

func Test_Pair_Canonical(t *testing.T) {
	require.Equal(t, Pair{Higher: 4, Lower: 2}, NewPair(2, 4))
	require.Equal(t, NewPair(2, 4), NewPair(4, 2))
	require.Equal(t, Pair{Higher: 3, Lower: 3}, NewPair(3, 3))
}

func Test_SigningMessage_BindsPairAndValue(t *testing.T) {
	value := suite.Scalar().SetInt64(9)

	a, err := SigningMessage(NewPair(1, 2), value)
	require.NoError(t, err)
	b, err := SigningMessage(NewPair(2, 1), value)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := SigningMessage(NewPair(1, 3), value)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, c))

	d, err := SigningMessage(NewPair(1, 2), suite.Scalar().SetInt64(10))
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, d))

	require.True(t, bytes.HasPrefix(a, []byte(subshareDomain)))
}

func Test_Subshare_Builder(t *testing.T) {
	s := NewSubshare(suite.Scalar().SetInt64(1))
	require.False(t, s.IsComplete())

	withDealer, err := s.WithDealerSignature(Signature{1})
	require.NoError(t, err)
	require.Nil(t, s.DealerSignature)

	_, err = withDealer.WithDealerSignature(Signature{2})
	require.True(t, xerrors.Is(err, ErrSignaturePresent))

	withLower, err := withDealer.WithLowerSignature(Signature{3})
	require.NoError(t, err)
	_, err = withLower.WithLowerSignature(Signature{3})
	require.True(t, xerrors.Is(err, ErrSignaturePresent))

	full, err := withLower.WithHigherSignature(Signature{4})
	require.NoError(t, err)
	require.True(t, full.IsComplete())
	_, err = full.WithHigherSignature(Signature{4})
	require.True(t, xerrors.Is(err, ErrSignaturePresent))
}

func Test_ShareTable_Canonical(t *testing.T) {
	table := make(ShareTable)
	s := NewSubshare(suite.Scalar().SetInt64(5))

	table.Set(1, 3, s)
	require.Contains(t, table, 3)
	require.NotContains(t, table, 1)

	got, ok := table.Lookup(3, 1)
	require.True(t, ok)
	require.True(t, got.Value.Equal(s.Value))

	got, ok = table.Lookup(1, 3)
	require.True(t, ok)
	require.True(t, got.Value.Equal(s.Value))

	_, ok = table.Lookup(2, 3)
	require.False(t, ok)
	require.Equal(t, 1, table.Len())
}

func Test_Subshare_Wire(t *testing.T) {
	s := Subshare{
		Value:           suite.Scalar().SetInt64(77),
		DealerSignature: Signature{1, 2},
		LowerSignature:  Signature{3},
	}

	w, err := s.ToWire()
	require.NoError(t, err)
	require.Nil(t, w.HigherSignature)

	back, err := w.Decode(suite)
	require.NoError(t, err)
	require.True(t, back.Value.Equal(s.Value))
	require.Equal(t, s.DealerSignature, back.DealerSignature)

	_, err = Subshare{}.ToWire()
	require.Error(t, err)

	_, err = WireSubshare{Value: []byte{1, 2, 3}}.Decode(suite)
	require.Error(t, err)
}

func Test_Report_Faults(t *testing.T) {
	r := Report{Faults: []Fault{
		{Accused: 2, Kind: SignatureMismatch},
		{Accused: 2, Kind: ValueInconsistency},
		{Accused: DealerIndex, Kind: DegreeViolation},
	}}

	require.Len(t, r.FaultsAgainst(2), 2)
	require.Len(t, r.FaultsAgainst(3), 0)
	require.Equal(t, 1, r.CountFaults(DegreeViolation))
	require.Equal(t, "degree-violation", DegreeViolation.String())
	require.Equal(t, "missing-subshare", MissingSubshare.String())
}
