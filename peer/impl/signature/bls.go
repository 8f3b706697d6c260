package signature

import (
	"github.com/rs/zerolog/log"
	"go.dedis.ch/dela/crypto"
	"go.dedis.ch/dela/crypto/bls"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// NewBLS returns the BLS scheme of dela.
//
// - implements signature.Scheme
func NewBLS() Scheme {
	return blsScheme{}
}

type blsScheme struct{}

// Name implements signature.Scheme
func (blsScheme) Name() string {
	return BLSName
}

// NewSigner implements signature.Scheme
func (blsScheme) NewSigner() (Signer, error) {
	return blsSigner{
		signer: bls.NewSigner(),
	}, nil
}

type blsSigner struct {
	signer crypto.Signer
}

// Sign implements signature.Signer
func (s blsSigner) Sign(msg []byte) (types.Signature, error) {
	sig, err := s.signer.Sign(msg)
	if err != nil {
		return nil, xerrors.Errorf("bls: %w", err)
	}

	data, err := sig.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal bls signature: %w", err)
	}
	return data, nil
}

// PublicKey implements signature.Signer
func (s blsSigner) PublicKey() PublicKey {
	return blsPublicKey{
		pk: s.signer.GetPublicKey(),
	}
}

type blsPublicKey struct {
	pk crypto.PublicKey
}

// Verify implements signature.PublicKey
func (k blsPublicKey) Verify(msg []byte, sig types.Signature) (ok bool) {
	if len(sig) == 0 {
		return false
	}

	// the pairing code panics on some malformed points
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Msgf("bls verification panicked: %v", r)
			ok = false
		}
	}()

	return k.pk.Verify(msg, bls.NewSignature(sig)) == nil
}

// MarshalBinary implements signature.PublicKey
func (k blsPublicKey) MarshalBinary() ([]byte, error) {
	return k.pk.MarshalBinary()
}
