// Hardware abstraction interfaces used by the portable packages.
// Platform-specific implementations live under targets/; tests provide
// in-memory fakes.
package core

// OutputPin is a push-pull digital output claimed by exactly one owner for
// the lifetime of the program.
type OutputPin interface {
	// High drives the pin to its idle/deasserted level.
	High()

	// Low drives the pin to its asserted level.
	Low()
}

// IntLine is an interrupt wait primitive tied to a single GPIO interrupt
// source. Wait suspends the calling task until the line's interrupt fires.
// Implementations bridge the hardware interrupt to a task wakeup (channel
// send from the interrupt handler); they must not busy-wait on the pin.
// Exactly one task may own a line.
type IntLine interface {
	Wait()
}

// CRCEngine is a checksum calculation unit, either a hardware peripheral or
// a software implementation. Reset returns the accumulator to the engine's
// initial value, Feed folds data into it, Sum reads the current value.
//
// Engines are not safe for concurrent use: a caller that shares an engine
// across tasks must serialize the whole Reset/Feed/Sum sequence.
type CRCEngine interface {
	Reset()
	Feed(data []byte)
	Sum() uint16
}
