package types

import "fmt"

// String implements fmt.Stringer.
func (k FaultKind) String() string {
	switch k {
	case SignatureMismatch:
		return "signature-mismatch"
	case ValueInconsistency:
		return "value-inconsistency"
	case DegreeViolation:
		return "degree-violation"
	case InsufficientQuorum:
		return "insufficient-quorum"
	case MissingSubshare:
		return "missing-subshare"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// String implements fmt.Stringer.
func (f Fault) String() string {
	return fmt.Sprintf("<%s> round %d: %s %d accuses %d of %s: %s",
		f.ID, f.Round, f.Role, f.Party, f.Accused, f.Kind, f.Detail)
}

// FaultsAgainst returns the faults of the report accusing party.
func (r Report) FaultsAgainst(party int) []Fault {
	faults := make([]Fault, 0)
	for _, f := range r.Faults {
		if f.Accused == party {
			faults = append(faults, f)
		}
	}
	return faults
}

// CountFaults returns how many faults of the given kind were recorded.
func (r Report) CountFaults(kind FaultKind) int {
	count := 0
	for _, f := range r.Faults {
		if f.Kind == kind {
			count++
		}
	}
	return count
}
