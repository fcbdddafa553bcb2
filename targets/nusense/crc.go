//go:build tinygo

package main

import (
	"runtime/volatile"
	"unsafe"

	"nusense/core"
)

// STM32H7 CRC peripheral, programmed for the Dynamixel 2.0 polynomial.
// The peripheral lives on the AHB4 bus in the D3 domain.
const (
	rccBase     = 0x5802_4400
	rccAHB4ENR  = rccBase + 0x140
	rccCRCEN    = 1 << 19
	crcRegsBase = 0x5802_4C00
)

// CRC_CR bits: RESET restarts the accumulator from CRC_INIT; POLYSIZE
// selects the polynomial width (0b01 = 16 bit). Input/output reversal bits
// stay zero: Dynamixel CRC-16 uses no reflection.
const (
	crReset      = 1 << 0
	crPolysize16 = 0b01 << 3
)

type crcRegs struct {
	DR   volatile.Register32
	IDR  volatile.Register32
	CR   volatile.Register32
	_    uint32
	INIT volatile.Register32
	POL  volatile.Register32
}

// hardwareCRCEngine drives the STM32H7 CRC peripheral. It implements
// core.CRCEngine; exclusive access is enforced one level up by the CRC
// processor's mutex, so the register sequence here never interleaves.
type hardwareCRCEngine struct {
	regs *crcRegs
}

// newHardwareCRCEngine enables the peripheral clock and programs the
// Dynamixel parameters: polynomial 0x8005, initial value 0x0000, 16-bit,
// no reflection. Called once at startup; the engine is claimed by the CRC
// processor for the life of the program.
func newHardwareCRCEngine() core.CRCEngine {
	ahb4enr := (*volatile.Register32)(unsafe.Pointer(uintptr(rccAHB4ENR)))
	ahb4enr.SetBits(rccCRCEN)

	e := &hardwareCRCEngine{
		regs: (*crcRegs)(unsafe.Pointer(uintptr(crcRegsBase))),
	}
	e.regs.POL.Set(0x8005)
	e.regs.INIT.Set(0x0000)
	e.regs.CR.Set(crPolysize16 | crReset)
	return e
}

func (e *hardwareCRCEngine) Reset() {
	e.regs.CR.Set(crPolysize16 | crReset)
}

func (e *hardwareCRCEngine) Feed(data []byte) {
	// Byte-wide writes to the data register fold one input byte each; a
	// 32-bit write would change the fold order.
	dr8 := (*volatile.Register8)(unsafe.Pointer(&e.regs.DR))
	for _, b := range data {
		dr8.Set(b)
	}
}

func (e *hardwareCRCEngine) Sum() uint16 {
	return uint16(e.regs.DR.Get() & 0xFFFF)
}
