// Package acm defines the packet transport contract presented by the USB
// CDC ACM endpoint. The USB protocol engine itself lives in the target
// layer; portable code only depends on this interface.
package acm

import "errors"

// MaxPacketSize is the largest USB packet the transport carries. 512 bytes
// for high-speed USB; full-speed hardware would use 64.
const MaxPacketSize = 512

// ErrDisconnected means the host dropped the USB connection. Callers
// recover by waiting for a reconnection; a zero-length read is never used
// to signal disconnection.
var ErrDisconnected = errors.New("acm: host disconnected")

// Connection is a packet-oriented, bidirectional link to the USB host.
//
// A receive buffer smaller than an arriving packet is a configuration
// error, not a transient fault: implementations panic rather than silently
// truncate, because the buffer sizing invariant (MaxPacketSize) has been
// violated by the caller.
type Connection interface {
	// WaitConnection suspends until a host has connected and opened the
	// interface.
	WaitConnection()

	// SendPacket transmits one packet of up to MaxPacketSize bytes.
	SendPacket(data []byte) error

	// ReceivePacket blocks for the next packet and copies it into buffer,
	// returning the packet length.
	ReceivePacket(buffer []byte) (int, error)
}
