package types

import (
	"time"

	"go.dedis.ch/kyber/v3"
)

// FaultKind classifies a locally detected misbehaviour.
type FaultKind int

// Fault kinds
const (
	// SignatureMismatch: a signature does not verify against the claimed
	// signer and value.
	SignatureMismatch FaultKind = iota
	// ValueInconsistency: two signed messages disagree on the value of the
	// same pair.
	ValueInconsistency
	// DegreeViolation: an interpolated polynomial has degree above t.
	DegreeViolation
	// InsufficientQuorum: not enough verified points or usable rows.
	InsufficientQuorum
	// MissingSubshare: an expected subshare was never sent.
	MissingSubshare
)

// Role names a protocol role.
type Role string

// Protocol roles
const (
	RoleDealer        Role = "dealer"
	RoleReceiver      Role = "receiver"
	RoleReconstructor Role = "reconstructor"
	RoleClient        Role = "client"
)

// DealerIndex is the party index of the dealer in the key registry.
const DealerIndex = 0

// NoParty is used as the accused party when no single party can be blamed.
const NoParty = -1

// Fault is one entry of the structured fault log: which role at which round
// detected what, and whom it accuses.
type Fault struct {
	ID      string
	Round   uint
	Role    Role
	Party   int
	Accused int
	Kind    FaultKind
	Detail  string
}

// Report is the outcome of one protocol execution. Timings and communication
// volumes are diagnostics only.
type Report struct {
	RunID       string
	Params      PublicParameters
	Recoverable bool
	Secret      kyber.Scalar

	Faults []Fault

	Timings       map[Role]RoleTiming
	Communication map[Role]int64

	// PartyTimings and PartyCommunication are keyed by party index: 0 for
	// the dealer, 1..N for the receivers, then the reconstructors.
	PartyTimings       map[int]time.Duration
	PartyCommunication map[int]int64

	TranscriptDigest []byte
}

// RoleTiming aggregates the wall-clock time spent by all instances of a role.
type RoleTiming struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	First time.Duration
	Last  time.Duration
}
