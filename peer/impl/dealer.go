package impl

import (
	"crypto/cipher"

	"github.com/rs/zerolog/log"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/sigvss/peer/impl/polynomial"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// DealerOption customises a dealer.
type DealerOption func(*Dealer)

// WithPolynomialDegree makes the dealer share a polynomial of degree d
// instead of t. Any d > t is a misbehaving dealer.
func WithPolynomialDegree(d int) DealerOption {
	return func(dl *Dealer) {
		dl.degree = d
	}
}

// Dealer holds the secret and distributes the evaluations of a symmetric
// bivariate polynomial hiding it.
type Dealer struct {
	params types.PublicParameters
	secret kyber.Scalar
	scheme signature.Scheme
	stream cipher.Stream
	degree int

	signer signature.Signer
}

// NewDealer returns a dealer of secret. stream is the only randomness used
// to sample the polynomial.
func NewDealer(params types.PublicParameters, scheme signature.Scheme, secret kyber.Scalar,
	stream cipher.Stream, opts ...DealerOption) *Dealer {

	d := &Dealer{
		params: params,
		secret: secret,
		scheme: scheme,
		stream: stream,
		degree: params.T,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Share samples the polynomial and returns the full n×n table of subshares,
// each carrying the dealer signature, along with the dealer's public key.
func (d *Dealer) Share() (types.ShareTable, signature.PublicKey, error) {
	if d.signer == nil {
		signer, err := d.scheme.NewSigner()
		if err != nil {
			return nil, nil, xerrors.Errorf("failed to create dealer signer: %w", err)
		}
		d.signer = signer
	}

	poly := polynomial.RandomBivariateWithSecret(Suite, d.degree, d.secret, d.stream)

	n := d.params.N
	table := make(types.ShareTable, n)
	for i := 1; i <= n; i++ {
		table[i] = make(types.Row, n)
	}

	for i := 1; i <= n; i++ {
		x := Suite.Scalar().SetInt64(int64(i))

		for j := 1; j <= i; j++ {
			y := Suite.Scalar().SetInt64(int64(j))
			value := poly.Eval(x, y)

			pair := types.NewPair(i, j)
			msg, err := types.SigningMessage(pair, value)
			if err != nil {
				return nil, nil, xerrors.Errorf("pair %v: %w", pair, err)
			}

			sig, err := d.signer.Sign(msg)
			if err != nil {
				return nil, nil, xerrors.Errorf("failed to sign pair %v: %w", pair, err)
			}

			subshare, err := types.NewSubshare(value).WithDealerSignature(sig)
			if err != nil {
				return nil, nil, err
			}

			table[i][j] = subshare
			table[j][i] = subshare
		}
	}

	log.Info().Str("role", string(types.RoleDealer)).
		Int("degree", d.degree).
		Msgf("shared %d subshares", table.Len())

	return table, d.signer.PublicKey(), nil
}
