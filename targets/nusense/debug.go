//go:build tinygo

package main

import (
	"machine"

	"nusense/core"
)

// Diagnostics go out a dedicated UART header rather than the USB CDC port,
// which carries application packet traffic.
func initDebug() {
	uart := machine.UART1
	err := uart.Configure(machine.UARTConfig{BaudRate: 115200})
	if err != nil {
		// No debug channel; leave the no-op writer in place
		return
	}

	core.SetDebugWriter(func(msg string) {
		uart.Write([]byte(msg))
		uart.Write([]byte("\r\n"))
	})
}
