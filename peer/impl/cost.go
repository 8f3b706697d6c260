package impl

import (
	"time"

	"go.dedis.ch/sigvss/types"
)

// EstimateComposedCost projects the costs of report onto the 5t+4 parties
// of the randomness extraction. Parties 1..t+1 each deal once; the receivers
// of dealer i are the parties i+1..3t+i+1, receiver k-i of the run standing
// for party k; parties 4t+4..5t+4 reconstruct. The client time is only
// added to the overall time.
func EstimateComposedCost(report types.Report) types.ComposedCost {
	params := report.Params
	t := params.T
	nTotal := params.NTotal

	cost := types.ComposedCost{
		NTotal:             nTotal,
		PartyTimings:       make([]time.Duration, nTotal),
		PartyCommunication: make([]int64, nTotal),
		ClientTime:         report.PartyTimings[clientIndex(params)],
	}

	add := func(party, runIndex int) {
		if party < 1 || party > nTotal {
			return
		}
		cost.PartyTimings[party-1] += report.PartyTimings[runIndex]
		cost.PartyCommunication[party-1] += report.PartyCommunication[runIndex]
	}

	for i := 1; i <= t+1; i++ {
		add(i, types.DealerIndex)

		for k := i + 1; k <= 3*t+i+1; k++ {
			receiver := k - i
			if receiver > params.N {
				break
			}
			add(k, receiver)
		}
	}

	for k := 4*t + 4; k <= 5*t+4; k++ {
		add(k, reconstructorIndex(params, 1))
	}

	for k := 0; k < nTotal; k++ {
		cost.OverallTime += cost.PartyTimings[k]
		cost.OverallCommunication += cost.PartyCommunication[k]
	}
	cost.OverallTime += cost.ClientTime

	return cost
}
