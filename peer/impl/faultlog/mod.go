package faultlog

import (
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/sigvss/types"
)

// FaultLog describes the primitives of the structured fault log shared by
// the roles of one run.
type FaultLog interface {
	// Record stores the fault, assigning it an ID if it has none, and returns
	// the stored fault.
	Record(fault types.Fault) types.Fault

	// All returns the faults in recording order.
	All() []types.Fault

	ByAccused() map[int][]types.Fault

	Count(kind types.FaultKind) int

	Len() int
}

// New returns an empty fault log tagged with the run ID for logging.
func New(runID string) FaultLog {
	return &faultLog{
		runID:  runID,
		faults: make([]types.Fault, 0),
	}
}

type faultLog struct {
	sync.Mutex
	runID  string
	faults []types.Fault
}

// Record implements FaultLog
func (l *faultLog) Record(fault types.Fault) types.Fault {
	if fault.ID == "" {
		fault.ID = xid.New().String()
	}

	l.Lock()
	l.faults = append(l.faults, fault)
	l.Unlock()

	log.Warn().
		Str("run", l.runID).
		Str("fault", fault.ID).
		Uint("round", fault.Round).
		Str("role", string(fault.Role)).
		Int("party", fault.Party).
		Int("accused", fault.Accused).
		Str("kind", fault.Kind.String()).
		Msg(fault.Detail)

	return fault
}

// All implements FaultLog
func (l *faultLog) All() []types.Fault {
	l.Lock()
	defer l.Unlock()

	faults := make([]types.Fault, len(l.faults))
	copy(faults, l.faults)
	return faults
}

// ByAccused implements FaultLog
func (l *faultLog) ByAccused() map[int][]types.Fault {
	l.Lock()
	defer l.Unlock()

	out := make(map[int][]types.Fault)
	for _, f := range l.faults {
		out[f.Accused] = append(out[f.Accused], f)
	}
	return out
}

// Count implements FaultLog
func (l *faultLog) Count(kind types.FaultKind) int {
	l.Lock()
	defer l.Unlock()

	count := 0
	for _, f := range l.faults {
		if f.Kind == kind {
			count++
		}
	}
	return count
}

// Len implements FaultLog
func (l *faultLog) Len() int {
	l.Lock()
	defer l.Unlock()

	return len(l.faults)
}
