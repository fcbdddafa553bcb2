// Package apps contains the application tasks that run on top of the USB
// packet transport: the echo test application and the Dynamixel CRC
// demonstration.
package apps

import (
	"errors"
	"time"

	"nusense/acm"
	"nusense/core"
)

// Delay between reconnection attempts when the connection is lost.
const reconnectDelay = 100 * time.Millisecond

// EchoApp echoes every received USB packet back to the host. It operates on
// whole packets rather than a byte stream so packet boundaries survive the
// round trip, which is what protocol experiments on the host side need.
type EchoApp struct {
	conn acm.Connection
}

// NewEchoApp creates an echo application over the given connection.
func NewEchoApp(conn acm.Connection) *EchoApp {
	return &EchoApp{conn: conn}
}

// Run waits for a host connection, echoes packets until the host
// disconnects, then waits for the next connection. Runs forever.
func (a *EchoApp) Run() error {
	core.DebugPrintln("[echo] application started")

	for {
		a.conn.WaitConnection()
		core.DebugPrintln("[echo] host connected")

		err := a.echoLoop()
		if errors.Is(err, acm.ErrDisconnected) {
			core.DebugPrintln("[echo] connection lost, waiting for reconnect")
			time.Sleep(reconnectDelay)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (a *EchoApp) echoLoop() error {
	var buffer [acm.MaxPacketSize]byte

	for {
		n, err := a.conn.ReceivePacket(buffer[:])
		if err != nil {
			return err
		}
		data := buffer[:n]

		if text, ok := printable(data); ok {
			core.DebugPrintln("[echo] received " + core.Itoa(n) + " bytes: '" + text + "'")
		} else {
			core.DebugPrintln("[echo] received " + core.Itoa(n) + " byte binary packet")
		}

		if err := a.conn.SendPacket(data); err != nil {
			return err
		}
	}
}

// printable reports whether data is ASCII text (allowing whitespace) and
// returns it as a string if so.
func printable(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	for _, b := range data {
		if b > 0x7E {
			return "", false
		}
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return "", false
		}
	}
	return string(data), true
}
