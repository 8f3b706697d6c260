package impl

import (
	"github.com/vmihailenco/msgpack/v5"
	"go.dedis.ch/sigvss/transport"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

func marshalMessage(run string, round uint, from, to int, msg types.Message) (transport.Message, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return transport.Message{}, xerrors.Errorf("failed to encode %s: %w", msg.Name(), err)
	}

	transportMessage := transport.Message{
		Run:     run,
		Type:    msg.Name(),
		Round:   round,
		From:    from,
		To:      to,
		Payload: data,
	}

	return transportMessage, nil
}

// unmarshalMessage decodes the payload of pkt into msg, which must be a
// pointer to the message type named by pkt.Type.
func unmarshalMessage(pkt transport.Message, msg types.Message) error {
	if pkt.Type != msg.Name() {
		return xerrors.Errorf("expected a %s message, got %s", msg.Name(), pkt.Type)
	}

	err := msgpack.Unmarshal(pkt.Payload, msg)
	if err != nil {
		return xerrors.Errorf("failed to decode %s: %w", pkt.Type, err)
	}

	return nil
}

// send encodes msg and stores it on the private channel from -> to.
func (r *run) send(round uint, from, to int, msg types.Message) error {
	pkt, err := marshalMessage(r.id, round, from, to, msg)
	if err != nil {
		return err
	}

	err = r.network.Private(from, to).Store(pkt)
	if err != nil {
		return xerrors.Errorf("failed to send %s: %w", pkt, err)
	}

	return nil
}

// broadcast encodes msg and stores it in the broadcast round.
func (r *run) broadcast(round uint, from int, msg types.Message) error {
	pkt, err := marshalMessage(r.id, round, from, transport.BroadcastTo, msg)
	if err != nil {
		return err
	}

	err = r.network.Broadcast().Store(round, pkt)
	if err != nil {
		return xerrors.Errorf("failed to broadcast %s: %w", pkt, err)
	}

	return nil
}
