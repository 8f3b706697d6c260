package types

import (
	"fmt"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"
)

// ToWire serializes the subshare.
func (s Subshare) ToWire() (WireSubshare, error) {
	if s.Value == nil {
		return WireSubshare{}, xerrors.New("subshare has no value")
	}

	value, err := s.Value.MarshalBinary()
	if err != nil {
		return WireSubshare{}, xerrors.Errorf("failed to marshal value: %w", err)
	}

	return WireSubshare{
		Value:           value,
		DealerSignature: s.DealerSignature,
		LowerSignature:  s.LowerSignature,
		HigherSignature: s.HigherSignature,
	}, nil
}

// Decode rebuilds the subshare, reading the value as a scalar of group.
func (w WireSubshare) Decode(group kyber.Group) (Subshare, error) {
	value := group.Scalar()
	err := value.UnmarshalBinary(w.Value)
	if err != nil {
		return Subshare{}, xerrors.Errorf("failed to unmarshal value: %w", err)
	}

	return Subshare{
		Value:           value,
		DealerSignature: w.DealerSignature,
		LowerSignature:  w.LowerSignature,
		HigherSignature: w.HigherSignature,
	}, nil
}

// RowToWire serializes every subshare of the row.
func RowToWire(row Row) (map[int]WireSubshare, error) {
	out := make(map[int]WireSubshare, len(row))
	for k, s := range row {
		w, err := s.ToWire()
		if err != nil {
			return nil, xerrors.Errorf("column %d: %w", k, err)
		}
		out[k] = w
	}
	return out, nil
}

// RowFromWire decodes every subshare of a serialized row.
func RowFromWire(group kyber.Group, wire map[int]WireSubshare) (Row, error) {
	row := make(Row, len(wire))
	for k, w := range wire {
		s, err := w.Decode(group)
		if err != nil {
			return nil, xerrors.Errorf("column %d: %w", k, err)
		}
		row[k] = s
	}
	return row, nil
}

// -----------------------------------------------------------------------------

// NewEmpty implements types.Message.
func (m RowMessage) NewEmpty() Message {
	return &RowMessage{}
}

// Name implements types.Message.
func (m RowMessage) Name() string {
	return "row"
}

// String implements types.Message.
func (m RowMessage) String() string {
	return fmt.Sprintf("<%d> - dealer row with %d subshares", m.Receiver, len(m.Subshares))
}

// -----------------------------------------------------------------------------

// NewEmpty implements types.Message.
func (m SubshareMessage) NewEmpty() Message {
	return &SubshareMessage{}
}

// Name implements types.Message.
func (m SubshareMessage) Name() string {
	return "subshare"
}

// String implements types.Message.
func (m SubshareMessage) String() string {
	return fmt.Sprintf("<%d> -> <%d> - doubly signed subshare", m.From, m.To)
}

// -----------------------------------------------------------------------------

// NewEmpty implements types.Message.
func (m TripleRowMessage) NewEmpty() Message {
	return &TripleRowMessage{}
}

// Name implements types.Message.
func (m TripleRowMessage) Name() string {
	return "triplerow"
}

// String implements types.Message.
func (m TripleRowMessage) String() string {
	return fmt.Sprintf("<%d> - %d triply signed subshares", m.From, len(m.Subshares))
}

// -----------------------------------------------------------------------------

// NewEmpty implements types.Message.
func (m AggregateMessage) NewEmpty() Message {
	return &AggregateMessage{}
}

// Name implements types.Message.
func (m AggregateMessage) Name() string {
	return "aggregate"
}

// String implements types.Message.
func (m AggregateMessage) String() string {
	return fmt.Sprintf("<%d> - aggregate of %d rows", m.Reconstructor, len(m.Rows))
}
