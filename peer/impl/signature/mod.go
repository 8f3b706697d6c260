package signature

import (
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// Scheme names of the supported signature schemes.
const (
	SchnorrName = "schnorr"
	BLSName     = "bls"
)

// Scheme creates signers of one signature algorithm.
type Scheme interface {
	Name() string

	// NewSigner generates a fresh key pair.
	NewSigner() (Signer, error)
}

// Signer holds a private key.
type Signer interface {
	Sign(msg []byte) (types.Signature, error)

	PublicKey() PublicKey
}

// PublicKey verifies signatures of its signer. Verify never panics; malformed
// or empty signatures are reported as invalid.
type PublicKey interface {
	Verify(msg []byte, sig types.Signature) bool

	MarshalBinary() ([]byte, error)
}

// FromName returns the scheme registered under name. An empty name selects
// Schnorr.
func FromName(name string) (Scheme, error) {
	switch name {
	case "", SchnorrName:
		return NewSchnorr(), nil
	case BLSName:
		return NewBLS(), nil
	default:
		return nil, xerrors.Errorf("unknown signature scheme %q", name)
	}
}
