package transport

import "fmt"

// Message is the envelope exchanged between parties. Payload holds the
// encoded types.Message named by Type. Run identifies the execution the
// message belongs to when a network is shared by several runs.
type Message struct {
	Run     string
	Type    string
	Round   uint
	From    int
	To      int
	Payload []byte
}

// String implements fmt.Stringer.
func (m Message) String() string {
	return fmt.Sprintf("{run %s round %d: %d -> %d %s - %d bytes}", m.Run, m.Round, m.From, m.To, m.Type, len(m.Payload))
}

// Size is the number of bytes the message puts on the wire.
func (m Message) Size() int {
	return len(m.Payload)
}

// BroadcastChannel is an authenticated channel every party reads, organised
// in rounds.
type BroadcastChannel interface {
	// Store appends msgs to the given round.
	Store(round uint, msgs ...Message) error

	// Read returns the messages of a round in storing order.
	Read(round uint) []Message
}

// PrivateChannel is an authenticated and confidential point-to-point channel.
type PrivateChannel interface {
	Store(msg Message) error

	// Read returns every message stored so far, in storing order.
	Read() []Message
}

// BroadcastTo is the To field of a broadcast message.
const BroadcastTo = -1
