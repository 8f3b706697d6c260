package signature

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/sigvss/types"
)

var suite = edwards25519.NewBlakeSHA256Ed25519()

func schemes() []Scheme {
	return []Scheme{NewSchnorr(), NewBLS()}
}

func Test_Signature_SignVerify(t *testing.T) {
	for _, scheme := range schemes() {
		t.Run(scheme.Name(), func(t *testing.T) {
			signer, err := scheme.NewSigner()
			require.NoError(t, err)

			msg := []byte("hello")
			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			require.True(t, signer.PublicKey().Verify(msg, sig))
			require.False(t, signer.PublicKey().Verify([]byte("hellp"), sig))
			require.False(t, signer.PublicKey().Verify(msg, nil))
			require.False(t, signer.PublicKey().Verify(msg, []byte{1, 2, 3}))

			other, err := scheme.NewSigner()
			require.NoError(t, err)
			require.False(t, other.PublicKey().Verify(msg, sig))
		})
	}
}

func Test_Signature_FlippedValueByte(t *testing.T) {
	pair := types.NewPair(2, 3)

	for _, scheme := range schemes() {
		t.Run(scheme.Name(), func(t *testing.T) {
			signer, err := scheme.NewSigner()
			require.NoError(t, err)

			msg, err := types.SigningMessage(pair, suite.Scalar().SetInt64(7))
			require.NoError(t, err)

			sig, err := signer.Sign(msg)
			require.NoError(t, err)

			tampered := append([]byte{}, msg...)
			tampered[len(tampered)-1] ^= 0x01

			require.False(t, signer.PublicKey().Verify(tampered, sig))
		})
	}
}

func Test_Signature_PairBinding(t *testing.T) {
	signer, err := NewSchnorr().NewSigner()
	require.NoError(t, err)

	value := suite.Scalar().SetInt64(11)

	msg, err := types.SigningMessage(types.NewPair(3, 1), value)
	require.NoError(t, err)
	sig, err := signer.Sign(msg)
	require.NoError(t, err)

	other, err := types.SigningMessage(types.NewPair(3, 2), value)
	require.NoError(t, err)

	require.False(t, signer.PublicKey().Verify(other, sig))
}

func Test_Signature_FromName(t *testing.T) {
	s, err := FromName("")
	require.NoError(t, err)
	require.Equal(t, SchnorrName, s.Name())

	s, err = FromName(BLSName)
	require.NoError(t, err)
	require.Equal(t, BLSName, s.Name())

	_, err = FromName("rsa")
	require.Error(t, err)
}

func Test_Verifier_Chain(t *testing.T) {
	scheme := NewSchnorr()

	dealer, err := scheme.NewSigner()
	require.NoError(t, err)
	lower, err := scheme.NewSigner()
	require.NoError(t, err)
	higher, err := scheme.NewSigner()
	require.NoError(t, err)

	pair := types.NewPair(1, 4)
	value := suite.Scalar().SetInt64(5)

	msg, err := types.SigningMessage(pair, value)
	require.NoError(t, err)

	s := types.NewSubshare(value)
	for _, step := range []struct {
		signer Signer
		add    func(types.Subshare, types.Signature) (types.Subshare, error)
	}{
		{dealer, types.Subshare.WithDealerSignature},
		{lower, types.Subshare.WithLowerSignature},
		{higher, types.Subshare.WithHigherSignature},
	} {
		sig, err := step.signer.Sign(msg)
		require.NoError(t, err)
		s, err = step.add(s, sig)
		require.NoError(t, err)
	}
	require.True(t, s.IsComplete())

	v, err := NewVerifier(16)
	require.NoError(t, err)

	keys := ChainKeys{
		Dealer: dealer.PublicKey(),
		Lower:  lower.PublicKey(),
		Higher: higher.PublicKey(),
	}

	_, ok := v.VerifyChain(pair, s, keys, HigherLink)
	require.True(t, ok)

	// cached path
	_, ok = v.VerifyChain(pair, s, keys, HigherLink)
	require.True(t, ok)

	swapped := keys
	swapped.Lower, swapped.Higher = keys.Higher, keys.Lower
	link, ok := v.VerifyChain(pair, s, swapped, HigherLink)
	require.False(t, ok)
	require.Equal(t, LowerLink, link)

	forged := s
	forged.Value = suite.Scalar().SetInt64(6)
	link, ok = v.VerifyChain(pair, forged, keys, HigherLink)
	require.False(t, ok)
	require.Equal(t, DealerLink, link)

	_, ok = v.VerifyChain(pair, s, ChainKeys{Dealer: dealer.PublicKey()}, DealerLink)
	require.True(t, ok)

	link, ok = v.VerifyChain(pair, s, ChainKeys{Dealer: dealer.PublicKey()}, LowerLink)
	require.False(t, ok)
	require.Equal(t, LowerLink, link)
}

func Test_Verifier_NilKey(t *testing.T) {
	v, err := NewVerifier(0)
	require.NoError(t, err)

	require.False(t, v.Verify(nil, []byte("m"), []byte("s")))
}
