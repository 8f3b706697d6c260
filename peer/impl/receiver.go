package impl

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/sigvss/peer/impl/faultlog"
	"go.dedis.ch/sigvss/peer/impl/polynomial"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// ReceiverOption customises a receiver.
type ReceiverOption func(*Receiver)

// WithForgery makes the receiver replace the value of every subshare it
// forwards for a pair selected by pred with value+1, signed by itself.
func WithForgery(pred func(types.Pair) bool) ReceiverOption {
	return func(r *Receiver) {
		r.forge = pred
	}
}

// Receiver is the party i in [1, n]. It checks its dealer row, co-signs the
// subshares it shares with higher receivers and countersigns what lower
// receivers send it.
type Receiver struct {
	index    int
	params   types.PublicParameters
	scheme   signature.Scheme
	verifier *signature.Verifier
	faults   faultlog.FaultLog

	signer signature.Signer

	// row holds the dealer subshares whose signature verified.
	row types.Row

	forge func(types.Pair) bool
}

// NewReceiver returns the receiver of the given index.
func NewReceiver(index int, params types.PublicParameters, scheme signature.Scheme,
	verifier *signature.Verifier, faults faultlog.FaultLog, opts ...ReceiverOption) *Receiver {

	r := &Receiver{
		index:    index,
		params:   params,
		scheme:   scheme,
		verifier: verifier,
		faults:   faults,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Index returns the receiver's party index.
func (r *Receiver) Index() int {
	return r.index
}

// ReceiveFromDealer generates the receiver's key pair, checks the dealer
// signatures and the degree of the row, and returns the subshares of every
// column k >= i with its own signature appended.
func (r *Receiver) ReceiveFromDealer(dealerPK signature.PublicKey, row types.Row) (types.Row, signature.PublicKey, error) {
	signer, err := r.scheme.NewSigner()
	if err != nil {
		return nil, nil, xerrors.Errorf("receiver %d: failed to create signer: %w", r.index, err)
	}
	r.signer = signer

	n := r.params.N
	keys := signature.ChainKeys{Dealer: dealerPK}

	verified := make(types.Row, n)
	xs := make([]int, 0, n)
	ys := make([]kyber.Scalar, 0, n)

	for k := 1; k <= n; k++ {
		s, ok := row[k]
		if !ok {
			r.fault(roundReceive, types.DealerIndex, types.MissingSubshare,
				fmt.Sprintf("no subshare for column %d", k))
			continue
		}

		_, ok = r.verifier.VerifyChain(types.NewPair(r.index, k), s, keys, signature.DealerLink)
		if !ok {
			r.fault(roundReceive, types.DealerIndex, types.SignatureMismatch,
				fmt.Sprintf("dealer signature of column %d does not verify", k))
			continue
		}

		verified[k] = s
		xs = append(xs, k)
		ys = append(ys, s.Value)
	}

	r.row = verified

	if len(xs) > 0 {
		poly, err := polynomial.EvalsToCoeffs(Suite, xs, ys, len(xs))
		if err != nil {
			return nil, nil, xerrors.Errorf("receiver %d: failed to interpolate row: %w", r.index, err)
		}

		if poly.Degree() > r.params.T {
			r.fault(roundReceive, types.DealerIndex, types.DegreeViolation,
				fmt.Sprintf("row has degree %d > %d", poly.Degree(), r.params.T))
		}
	}

	out := make(types.Row, n-r.index+1)
	for k := r.index; k <= n; k++ {
		s, ok := verified[k]
		if !ok {
			continue
		}

		signed, err := r.countersign(types.NewPair(r.index, k), s, types.Subshare.WithLowerSignature)
		if err != nil {
			return nil, nil, err
		}
		out[k] = signed
	}

	return out, signer.PublicKey(), nil
}

// ReceiveFromParty checks a subshare co-signed by the lower receiver from and
// returns it with the receiver's signature appended. happy is false if a
// signature does not verify or if the value differs from the dealer row.
func (r *Receiver) ReceiveFromParty(from int, s types.Subshare, dealerPK, peerPK signature.PublicKey) (bool, types.Subshare, error) {
	if r.signer == nil {
		return false, types.Subshare{}, xerrors.Errorf("receiver %d has not received its dealer row", r.index)
	}

	if from > r.index {
		return false, types.Subshare{}, xerrors.Errorf("receiver %d only accepts subshares from lower receivers, got %d", r.index, from)
	}

	pair := types.NewPair(from, r.index)
	keys := signature.ChainKeys{
		Dealer: dealerPK,
		Lower:  peerPK,
	}

	link, ok := r.verifier.VerifyChain(pair, s, keys, signature.LowerLink)
	if !ok {
		r.fault(roundForward, from, types.SignatureMismatch,
			fmt.Sprintf("%s signature of pair %v does not verify", link, pair))
		return false, types.Subshare{}, nil
	}

	own, found := r.row[from]
	if !found || own.Value == nil || !own.Value.Equal(s.Value) {
		r.fault(roundForward, from, types.ValueInconsistency,
			fmt.Sprintf("value of pair %v differs from the dealer row", pair))
		return false, types.Subshare{}, nil
	}

	expanded, err := r.countersign(pair, s, types.Subshare.WithHigherSignature)
	if err != nil {
		return false, types.Subshare{}, err
	}

	return true, expanded, nil
}

// countersign signs the value of s for pair and adds the signature with add.
// A forging receiver first replaces the value.
func (r *Receiver) countersign(pair types.Pair, s types.Subshare,
	add func(types.Subshare, types.Signature) (types.Subshare, error)) (types.Subshare, error) {

	if r.forge != nil && r.forge(pair) {
		forged := Suite.Scalar().Add(s.Value, Suite.Scalar().One())
		s.Value = forged

		log.Debug().Str("role", string(types.RoleReceiver)).
			Int("party", r.index).
			Msgf("forging pair %v", pair)
	}

	msg, err := types.SigningMessage(pair, s.Value)
	if err != nil {
		return types.Subshare{}, xerrors.Errorf("receiver %d: %w", r.index, err)
	}

	sig, err := r.signer.Sign(msg)
	if err != nil {
		return types.Subshare{}, xerrors.Errorf("receiver %d: failed to sign pair %v: %w", r.index, pair, err)
	}

	signed, err := add(s, sig)
	if err != nil {
		return types.Subshare{}, xerrors.Errorf("receiver %d: %w", r.index, err)
	}

	return signed, nil
}

func (r *Receiver) fault(round uint, accused int, kind types.FaultKind, detail string) {
	r.faults.Record(types.Fault{
		Round:   round,
		Role:    types.RoleReceiver,
		Party:   r.index,
		Accused: accused,
		Kind:    kind,
		Detail:  detail,
	})
}
