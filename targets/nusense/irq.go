//go:build tinygo

package main

import "machine"

// intLine bridges a GPIO interrupt to a task wakeup. The interrupt handler
// does a non-blocking send on a one-deep channel; Wait blocks on the
// receive. A wakeup that arrives while one is already pending coalesces,
// which is correct for a data-ready line: the next FIFO drain picks up
// everything queued so far.
type intLine struct {
	wake chan struct{}
}

// newIntLine claims pin as the IMU data-ready interrupt source. The line is
// active low (falling edge = data ready).
func newIntLine(pin machine.Pin) *intLine {
	l := &intLine{wake: make(chan struct{}, 1)}

	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	})
	if err != nil {
		panic("imu interrupt configure: " + err.Error())
	}

	return l
}

func (l *intLine) Wait() {
	<-l.wake
}
