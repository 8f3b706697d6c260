package impl

import (
	"fmt"
	"sort"

	"go.dedis.ch/sigvss/peer/impl/faultlog"
	"go.dedis.ch/sigvss/peer/impl/keyregistry"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/types"
)

// Reconstructor collects the triply signed rows of the receivers and keeps
// the entries whose whole chain verifies.
type Reconstructor struct {
	index    int
	verifier *signature.Verifier
	faults   faultlog.FaultLog

	table types.ShareTable
}

// NewReconstructor returns the reconstructor with the given party index.
func NewReconstructor(index int, verifier *signature.Verifier, faults faultlog.FaultLog) *Reconstructor {
	return &Reconstructor{
		index:    index,
		verifier: verifier,
		faults:   faults,
		table:    make(types.ShareTable),
	}
}

// ReceiveFromParty verifies the row of receiver from, keyed by the lower
// index of each pair, and returns the entries that verified. Those entries
// are also added to the aggregate.
func (r *Reconstructor) ReceiveFromParty(from int, row types.Row, registry keyregistry.KeyRegistry) types.Row {
	verified := make(types.Row, len(row))

	columns := make([]int, 0, len(row))
	for k := range row {
		columns = append(columns, k)
	}
	sort.Ints(columns)

	for _, k := range columns {
		s := row[k]
		pair := types.NewPair(from, k)

		if pair.Higher != from {
			r.fault(from, fmt.Sprintf("receiver %d sent pair %v it is not the higher party of", from, pair))
			continue
		}

		keys := signature.ChainKeys{
			Dealer: registry.Get(types.DealerIndex),
			Lower:  registry.Get(pair.Lower),
			Higher: registry.Get(pair.Higher),
		}

		link, ok := r.verifier.VerifyChain(pair, s, keys, signature.HigherLink)
		if !ok {
			r.fault(from, fmt.Sprintf("%s signature of pair %v does not verify", link, pair))
			continue
		}

		verified[k] = s
		r.table.Set(pair.Higher, pair.Lower, s)
	}

	return verified
}

// Aggregate returns every verified entry received so far, in canonical
// orientation.
func (r *Reconstructor) Aggregate() types.ShareTable {
	out := make(types.ShareTable, len(r.table))
	for i, row := range r.table {
		copied := make(types.Row, len(row))
		for k, s := range row {
			copied[k] = s
		}
		out[i] = copied
	}
	return out
}

func (r *Reconstructor) fault(accused int, detail string) {
	r.faults.Record(types.Fault{
		Round:   roundReconstruct,
		Role:    types.RoleReconstructor,
		Party:   r.index,
		Accused: accused,
		Kind:    types.SignatureMismatch,
		Detail:  detail,
	})
}
