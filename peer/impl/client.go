package impl

import (
	"fmt"
	"sort"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/sigvss/peer/impl/faultlog"
	"go.dedis.ch/sigvss/peer/impl/keyregistry"
	"go.dedis.ch/sigvss/peer/impl/polynomial"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/types"
)

// Client recovers the secret from the aggregated triply signed subshares.
type Client struct {
	index    int
	params   types.PublicParameters
	verifier *signature.Verifier
	faults   faultlog.FaultLog
}

// NewClient returns a client for the given parameters.
func NewClient(index int, params types.PublicParameters, verifier *signature.Verifier, faults faultlog.FaultLog) *Client {
	return &Client{
		index:    index,
		params:   params,
		verifier: verifier,
		faults:   faults,
	}
}

// Aggregate is the table broadcast by one reconstructor.
type Aggregate struct {
	Reconstructor int
	Table         types.ShareTable
}

// Merge combines the reconstructor aggregates into one table. For each pair
// the first entry whose chain verifies is kept. An entry that does not verify
// is recorded against the reconstructor that broadcast it.
func (c *Client) Merge(aggregates []Aggregate, registry keyregistry.KeyRegistry) types.ShareTable {
	merged := make(types.ShareTable)

	for _, aggregate := range aggregates {
		for _, h := range sortedRows(aggregate.Table) {
			row := aggregate.Table[h]

			for _, l := range sortedColumns(row) {
				s := row[l]

				_, found := merged.Lookup(h, l)
				if found {
					continue
				}

				pair := types.NewPair(h, l)
				keys := signature.ChainKeys{
					Dealer: registry.Get(types.DealerIndex),
					Lower:  registry.Get(pair.Lower),
					Higher: registry.Get(pair.Higher),
				}

				link, ok := c.verifier.VerifyChain(pair, s, keys, signature.HigherLink)
				if !ok {
					c.fault(aggregate.Reconstructor, types.SignatureMismatch,
						fmt.Sprintf("aggregated %s signature of pair %v does not verify", link, pair))
					continue
				}

				merged.Set(h, l, s)
			}
		}
	}

	return merged
}

// ComputeSecret scans the rows in ascending order. A row is usable when 2t+1
// of its entries verify and the polynomial through them has degree <= t; its
// value at 0 is then a point of f(x, 0). Entries that fail verification are
// skipped and the scan continues with the next column. The secret is
// interpolated from the first t+1 usable rows; recoverable is false, and the
// secret nil, when there are not that many.
func (c *Client) ComputeSecret(table types.ShareTable, registry keyregistry.KeyRegistry) (bool, kyber.Scalar) {
	n := c.params.N
	t := c.params.T
	quorum := c.params.RowQuorum()

	zeroXs := make([]int, 0, t+1)
	zeroYs := make([]kyber.Scalar, 0, t+1)

	for i := 1; i <= n && len(zeroXs) < t+1; i++ {
		xs := make([]int, 0, quorum)
		ys := make([]kyber.Scalar, 0, quorum)

		for k := 1; k <= n && len(xs) < quorum; k++ {
			s, ok := table.Lookup(i, k)
			if !ok {
				continue
			}

			pair := types.NewPair(i, k)
			keys := signature.ChainKeys{
				Dealer: registry.Get(types.DealerIndex),
				Lower:  registry.Get(pair.Lower),
				Higher: registry.Get(pair.Higher),
			}

			// the higher party countersigned last and had to verify the
			// whole chain, whichever link fails
			link, ok := c.verifier.VerifyChain(pair, s, keys, signature.HigherLink)
			if !ok {
				c.fault(pair.Higher, types.SignatureMismatch,
					fmt.Sprintf("%s signature of pair %v does not verify", link, pair))
				continue
			}

			xs = append(xs, k)
			ys = append(ys, s.Value)
		}

		if len(xs) < quorum {
			c.fault(types.NoParty, types.InsufficientQuorum,
				fmt.Sprintf("row %d has %d verified points, %d needed", i, len(xs), quorum))
			continue
		}

		poly, err := polynomial.EvalsToCoeffs(Suite, xs, ys, quorum)
		if err != nil {
			c.fault(types.NoParty, types.InsufficientQuorum, fmt.Sprintf("row %d: %v", i, err))
			continue
		}

		if poly.Degree() > t {
			c.fault(types.DealerIndex, types.DegreeViolation,
				fmt.Sprintf("row %d has degree %d > %d", i, poly.Degree(), t))
			continue
		}

		zeroXs = append(zeroXs, i)
		zeroYs = append(zeroYs, poly.Eval(Suite.Scalar().Zero()))
	}

	if len(zeroXs) <= t {
		c.fault(types.NoParty, types.InsufficientQuorum,
			fmt.Sprintf("%d usable rows, %d needed", len(zeroXs), t+1))
		return false, nil
	}

	final, err := polynomial.EvalsToCoeffs(Suite, zeroXs, zeroYs, t+1)
	if err != nil {
		c.fault(types.NoParty, types.InsufficientQuorum, fmt.Sprintf("final interpolation: %v", err))
		return false, nil
	}

	return true, final.Eval(Suite.Scalar().Zero())
}

func sortedRows(table types.ShareTable) []int {
	rows := make([]int, 0, len(table))
	for h := range table {
		rows = append(rows, h)
	}
	sort.Ints(rows)
	return rows
}

func (c *Client) fault(accused int, kind types.FaultKind, detail string) {
	c.faults.Record(types.Fault{
		Round:   roundClient,
		Role:    types.RoleClient,
		Party:   c.index,
		Accused: accused,
		Kind:    kind,
		Detail:  detail,
	})
}
