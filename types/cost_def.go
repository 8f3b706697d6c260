package types

import "time"

// ComposedCost is the projection of a single run onto the NTotal parties of
// the randomness extraction: t+1 dealers, each with its own 3t+1 receivers,
// followed by t+1 reconstructors. Slices are indexed by party-1.
type ComposedCost struct {
	NTotal int

	PartyTimings       []time.Duration
	PartyCommunication []int64

	ClientTime time.Duration

	OverallTime          time.Duration
	OverallCommunication int64
}
