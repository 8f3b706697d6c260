package peer

import (
	"context"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/sigvss/types"
)

// VSS runs the signature-chained verifiable secret sharing protocol among a
// dealer, the receivers, the reconstructors and a client.
type VSS interface {
	// Execute shares secret, forwards the signed subshares through every
	// round and returns what the client recovered. Protocol misbehaviour is
	// reported in the returned report; the error is only set for parameter,
	// signing, codec or context failures.
	Execute(ctx context.Context, secret kyber.Scalar) (types.Report, error)
}
