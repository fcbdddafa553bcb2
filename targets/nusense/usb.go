//go:build tinygo

package main

import (
	"machine"
	"time"

	"nusense/acm"
)

// serialConn adapts the TinyGo USB CDC serial (machine.Serial) to the
// packet transport contract. The USB descriptors and the CDC ACM protocol
// engine are owned by the TinyGo runtime; this layer only chunks the byte
// stream into packets of up to acm.MaxPacketSize bytes.
type serialConn struct{}

// initUSB configures the CDC ACM interface and returns the packet
// connection for the application tasks.
func initUSB() acm.Connection {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		panic("usb cdc configure: " + err.Error())
	}
	return serialConn{}
}

// WaitConnection returns once the host has opened the port. The runtime
// exposes no explicit open notification or blocking read, so the first
// incoming byte is the connection signal, detected by polling. The poll
// interval bounds the added latency: up to 10ms here and up to 1ms per
// packet in ReceivePacket.
func (serialConn) WaitConnection() {
	for machine.Serial.Buffered() == 0 {
		time.Sleep(10 * time.Millisecond)
	}
}

func (serialConn) SendPacket(data []byte) error {
	if len(data) > acm.MaxPacketSize {
		panic("acm: packet exceeds MaxPacketSize")
	}
	_, err := machine.Serial.Write(data)
	return err
}

func (serialConn) ReceivePacket(buffer []byte) (int, error) {
	if len(buffer) < acm.MaxPacketSize {
		// Undersized buffers violate the transport sizing invariant
		panic("acm: receive buffer smaller than MaxPacketSize")
	}

	for machine.Serial.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}

	n := machine.Serial.Buffered()
	if n > acm.MaxPacketSize {
		n = acm.MaxPacketSize
	}
	for i := 0; i < n; i++ {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			return i, err
		}
		buffer[i] = b
	}
	return n, nil
}
