package channel

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/sigvss/transport"
)

func Test_Channel_Private(t *testing.T) {
	net := NewNetwork()

	ch := net.Private(1, 2)
	require.Empty(t, ch.Read())

	msg := transport.Message{Type: "subshare", Round: 2, From: 1, To: 2, Payload: []byte{1, 2, 3}}
	require.NoError(t, ch.Store(msg))

	require.Equal(t, []transport.Message{msg}, ch.Read())
	require.Equal(t, []transport.Message{msg}, net.Private(1, 2).Read())
	require.Empty(t, net.Private(2, 1).Read())

	wrong := msg
	wrong.To = 3
	require.Error(t, ch.Store(wrong))

	require.Equal(t, int64(3), net.BytesSent(1))
	require.Equal(t, int64(0), net.BytesSent(2))
	require.Equal(t, 1, net.Messages())
}

func Test_Channel_Broadcast(t *testing.T) {
	net := NewNetwork()
	bc := net.Broadcast()

	a := transport.Message{Type: "aggregate", Round: 4, From: 5, To: transport.BroadcastTo, Payload: make([]byte, 10)}
	b := transport.Message{Type: "aggregate", Round: 4, From: 6, To: transport.BroadcastTo, Payload: make([]byte, 7)}

	require.NoError(t, bc.Store(4, a, b))
	require.Equal(t, []transport.Message{a, b}, bc.Read(4))
	require.Empty(t, bc.Read(3))

	require.Error(t, bc.Store(5, a))

	require.Equal(t, int64(10), net.BytesSent(5))
	require.Equal(t, int64(7), net.BytesSent(6))
	require.Equal(t, 2, net.Messages())
}

func Test_Channel_ReadReturnsCopy(t *testing.T) {
	net := NewNetwork()
	ch := net.Private(0, 1)

	require.NoError(t, ch.Store(transport.Message{From: 0, To: 1, Type: "row"}))

	msgs := ch.Read()
	msgs[0].Type = "changed"

	require.Equal(t, "row", ch.Read()[0].Type)
}

func Test_Channel_RunAccounting(t *testing.T) {
	net := NewNetwork()

	a := transport.Message{Run: "a", Type: "row", Round: 1, From: 0, To: 1, Payload: make([]byte, 4)}
	b := transport.Message{Run: "b", Type: "row", Round: 1, From: 0, To: 1, Payload: make([]byte, 6)}

	require.NoError(t, net.Private(0, 1).Store(a))
	require.NoError(t, net.Private(0, 1).Store(b))

	require.Equal(t, int64(10), net.BytesSent(0))
	require.Equal(t, int64(4), net.RunBytesSent("a", 0))
	require.Equal(t, int64(6), net.RunBytesSent("b", 0))
	require.Equal(t, int64(0), net.RunBytesSent("c", 0))

	require.Equal(t, 2, net.Messages())
	require.Equal(t, 1, net.RunMessages("a"))
	require.Equal(t, 0, net.RunMessages("c"))

	// reads return every run, in storing order
	require.Equal(t, []transport.Message{a, b}, net.Private(0, 1).Read())
}
