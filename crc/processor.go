// Package crc provides the shared CRC processor used for Dynamixel 2.0
// packet checksums. The processor fronts a calculation engine (the STM32H7
// CRC peripheral on hardware, a software engine elsewhere) and serializes
// access so concurrent tasks cannot interleave their reset/feed/read
// sequences.
package crc

import (
	"sync"

	"nusense/core"
	"nusense/protocol"
)

// Processor computes Dynamixel 2.0 CRC-16 checksums using a CRC engine.
//
// The engine's accumulator is reset at the start of every calculation, so a
// Processor is a pure function of its input. The mutex makes the whole
// reset/feed/read sequence atomic with respect to other tasks; goroutines
// can be preempted at any point, so serialization cannot be assumed from
// the task model the way a non-yielding single executor could.
type Processor struct {
	mu     sync.Mutex
	engine core.CRCEngine
}

// NewProcessor creates a processor owning the given engine. The engine is
// claimed for the lifetime of the processor and must not be used elsewhere.
func NewProcessor(engine core.CRCEngine) *Processor {
	return &Processor{engine: engine}
}

// CalculateCRC computes the Dynamixel 2.0 CRC-16 of data and returns it in
// wire order [CRC_L, CRC_H].
func (p *Processor) CalculateCRC(data []byte) [2]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.engine.Reset()
	p.engine.Feed(data)
	return protocol.CRCBytes(p.engine.Sum())
}

// SoftwareEngine is a table-driven core.CRCEngine. It backs the processor on
// host builds and serves as the reference implementation for validating the
// hardware peripheral.
type SoftwareEngine struct {
	crc uint16
}

// NewSoftwareEngine creates a software CRC engine.
func NewSoftwareEngine() *SoftwareEngine {
	return &SoftwareEngine{}
}

func (e *SoftwareEngine) Reset() {
	e.crc = 0x0000
}

func (e *SoftwareEngine) Feed(data []byte) {
	e.crc = protocol.CRC16Update(e.crc, data)
}

func (e *SoftwareEngine) Sum() uint16 {
	return e.crc
}
