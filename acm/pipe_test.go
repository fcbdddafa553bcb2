package acm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeRoundTrip(t *testing.T) {
	a, b := NewPipe()

	a.WaitConnection()
	b.WaitConnection()

	require.NoError(t, a.SendPacket([]byte("hello")))

	buf := make([]byte, MaxPacketSize)
	n, err := b.ReceivePacket(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), buf[:n])

	// And the reverse direction
	require.NoError(t, b.SendPacket([]byte{0x01, 0x02}))
	n, err = a.ReceivePacket(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, buf[:n])
}

func TestPipeZeroLengthPacket(t *testing.T) {
	a, b := NewPipe()

	// A zero-length packet is a real packet, distinct from disconnection
	require.NoError(t, a.SendPacket(nil))

	buf := make([]byte, MaxPacketSize)
	n, err := b.ReceivePacket(buf)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPipeSendCopiesData(t *testing.T) {
	a, b := NewPipe()

	data := []byte{1, 2, 3}
	require.NoError(t, a.SendPacket(data))
	data[0] = 0xFF // mutation after send must not reach the peer

	buf := make([]byte, MaxPacketSize)
	n, err := b.ReceivePacket(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf[:n])
}

func TestPipeDisconnect(t *testing.T) {
	a, b := NewPipe()
	a.Close()

	err := a.SendPacket([]byte("x"))
	assert.ErrorIs(t, err, ErrDisconnected)

	_, err = b.ReceivePacket(make([]byte, MaxPacketSize))
	assert.ErrorIs(t, err, ErrDisconnected)

	// Closing twice is fine
	b.Close()
}

func TestPipeOversizePacketPanics(t *testing.T) {
	a, _ := NewPipe()

	assert.Panics(t, func() {
		_ = a.SendPacket(make([]byte, MaxPacketSize+1))
	})
}

func TestPipeUndersizedReceiveBufferPanics(t *testing.T) {
	a, b := NewPipe()
	require.NoError(t, a.SendPacket(make([]byte, 64)))

	// An undersized buffer is a configuration invariant violation and must
	// stop the system, not truncate
	assert.Panics(t, func() {
		_, _ = b.ReceivePacket(make([]byte, 16))
	})
}
