package impl

import (
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/sigvss/peer"
)

// Suite is the group every scalar, key and randomness stream of a run comes
// from.
var Suite = edwards25519.NewBlakeSHA256Ed25519()

// NewVSS creates a new protocol instance. Each call to Execute is an
// independent run with its own keys, registry and fault log.
func NewVSS(conf peer.Configuration) peer.VSS {
	v := vss{
		conf: conf,
	}

	return &v
}

// vss implements the signature-chained VSS protocol
//
// - implements peer.VSS
type vss struct {
	peer.VSS
	conf peer.Configuration
}
