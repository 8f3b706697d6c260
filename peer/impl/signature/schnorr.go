package signature

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/sign/schnorr"
	"go.dedis.ch/kyber/v3/util/key"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// NewSchnorr returns the Schnorr scheme over edwards25519.
//
// - implements signature.Scheme
func NewSchnorr() Scheme {
	return schnorrScheme{
		suite: edwards25519.NewBlakeSHA256Ed25519(),
	}
}

type schnorrScheme struct {
	suite *edwards25519.SuiteEd25519
}

// Name implements signature.Scheme
func (s schnorrScheme) Name() string {
	return SchnorrName
}

// NewSigner implements signature.Scheme
func (s schnorrScheme) NewSigner() (Signer, error) {
	pair := key.NewKeyPair(s.suite)

	return schnorrSigner{
		suite: s.suite,
		pair:  pair,
	}, nil
}

type schnorrSigner struct {
	suite *edwards25519.SuiteEd25519
	pair  *key.Pair
}

// Sign implements signature.Signer
func (s schnorrSigner) Sign(msg []byte) (types.Signature, error) {
	sig, err := schnorr.Sign(s.suite, s.pair.Private, msg)
	if err != nil {
		return nil, xerrors.Errorf("schnorr: %w", err)
	}
	return sig, nil
}

// PublicKey implements signature.Signer
func (s schnorrSigner) PublicKey() PublicKey {
	return schnorrPublicKey{
		suite: s.suite,
		point: s.pair.Public,
	}
}

type schnorrPublicKey struct {
	suite *edwards25519.SuiteEd25519
	point kyber.Point
}

// Verify implements signature.PublicKey
func (pk schnorrPublicKey) Verify(msg []byte, sig types.Signature) bool {
	if len(sig) == 0 {
		return false
	}
	return schnorr.Verify(pk.suite, pk.point, msg, sig) == nil
}

// MarshalBinary implements signature.PublicKey
func (pk schnorrPublicKey) MarshalBinary() ([]byte, error) {
	return pk.point.MarshalBinary()
}
