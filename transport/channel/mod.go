package channel

import (
	"sync"

	"go.dedis.ch/sigvss/transport"
	"golang.org/x/xerrors"
)

// NewNetwork returns an empty in-memory network.
func NewNetwork() *Network {
	return &Network{
		broadcast: make(map[uint]*messageStore),
		private:   make(map[link]*messageStore),
		sent:      make(map[int]int64),
		runs:      make(map[string]*runTally),
	}
}

// Network holds every channel of one run and counts the bytes each party
// sends.
//
// - provides transport.BroadcastChannel and transport.PrivateChannel
type Network struct {
	sync.Mutex

	broadcast map[uint]*messageStore
	private   map[link]*messageStore

	sent     map[int]int64
	messages int

	runs map[string]*runTally
}

// runTally is the traffic of a single run.
type runTally struct {
	sent     map[int]int64
	messages int
}

type link struct {
	from int
	to   int
}

// Broadcast returns the broadcast channel of the network.
func (n *Network) Broadcast() transport.BroadcastChannel {
	return broadcastChannel{network: n}
}

// Private returns the private channel from -> to.
func (n *Network) Private(from, to int) transport.PrivateChannel {
	return privateChannel{
		network: n,
		link:    link{from: from, to: to},
	}
}

// BytesSent returns the bytes sent by party so far, over every run.
func (n *Network) BytesSent(party int) int64 {
	n.Lock()
	defer n.Unlock()

	return n.sent[party]
}

// Messages returns the number of messages sent so far, over every run.
func (n *Network) Messages() int {
	n.Lock()
	defer n.Unlock()

	return n.messages
}

// RunBytesSent returns the bytes sent by party in the given run.
func (n *Network) RunBytesSent(run string, party int) int64 {
	n.Lock()
	defer n.Unlock()

	tally, ok := n.runs[run]
	if !ok {
		return 0
	}
	return tally.sent[party]
}

// RunMessages returns the number of messages sent in the given run.
func (n *Network) RunMessages(run string) int {
	n.Lock()
	defer n.Unlock()

	tally, ok := n.runs[run]
	if !ok {
		return 0
	}
	return tally.messages
}

func (n *Network) account(msg transport.Message) {
	n.Lock()
	defer n.Unlock()

	size := int64(msg.Size())

	n.sent[msg.From] += size
	n.messages++

	tally, ok := n.runs[msg.Run]
	if !ok {
		tally = &runTally{sent: make(map[int]int64)}
		n.runs[msg.Run] = tally
	}
	tally.sent[msg.From] += size
	tally.messages++
}

func (n *Network) broadcastStore(round uint) *messageStore {
	n.Lock()
	defer n.Unlock()

	s, ok := n.broadcast[round]
	if !ok {
		s = &messageStore{}
		n.broadcast[round] = s
	}
	return s
}

func (n *Network) privateStore(l link) *messageStore {
	n.Lock()
	defer n.Unlock()

	s, ok := n.private[l]
	if !ok {
		s = &messageStore{}
		n.private[l] = s
	}
	return s
}

type broadcastChannel struct {
	network *Network
}

// Store implements transport.BroadcastChannel
func (c broadcastChannel) Store(round uint, msgs ...transport.Message) error {
	store := c.network.broadcastStore(round)

	for _, msg := range msgs {
		if msg.Round != round {
			return xerrors.Errorf("message of round %d stored in round %d", msg.Round, round)
		}

		store.Append(msg)
		c.network.account(msg)
	}
	return nil
}

// Read implements transport.BroadcastChannel
func (c broadcastChannel) Read(round uint) []transport.Message {
	return c.network.broadcastStore(round).Get()
}

type privateChannel struct {
	network *Network
	link    link
}

// Store implements transport.PrivateChannel
func (c privateChannel) Store(msg transport.Message) error {
	if msg.From != c.link.from || msg.To != c.link.to {
		return xerrors.Errorf("message %d -> %d stored on channel %d -> %d",
			msg.From, msg.To, c.link.from, c.link.to)
	}

	c.network.privateStore(c.link).Append(msg)
	c.network.account(msg)
	return nil
}

// Read implements transport.PrivateChannel
func (c privateChannel) Read() []transport.Message {
	return c.network.privateStore(c.link).Get()
}

type messageStore struct {
	sync.RWMutex
	items []transport.Message
}

func (s *messageStore) Append(msg transport.Message) {
	s.Lock()
	defer s.Unlock()
	s.items = append(s.items, msg)
}

func (s *messageStore) Get() []transport.Message {
	s.RLock()
	defer s.RUnlock()

	items := make([]transport.Message, len(s.items))
	copy(items, s.items)
	return items
}
