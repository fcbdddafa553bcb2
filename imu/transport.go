package imu

import (
	"fmt"

	"tinygo.org/x/drivers"

	"nusense/core"
)

// Register address MSB set means read, clear means write. This convention is
// specific to the ICM-20689 (and related InvenSense parts).
const spiReadBit = 0x80

// Transport provides chip-select-gated register primitives for the IMU over
// a full-duplex SPI bus. It is owned exclusively by the IMU driver.
//
// Chip select is asserted low for the duration of each transaction and is
// restored to its idle high level on every exit path, including bus errors.
type Transport struct {
	bus drivers.SPI
	cs  core.OutputPin
}

// NewTransport claims the bus and chip-select pin for the IMU. The pin is
// driven to its idle level immediately.
func NewTransport(bus drivers.SPI, cs core.OutputPin) *Transport {
	cs.High()
	return &Transport{bus: bus, cs: cs}
}

// ReadRegister reads a single register: one address byte with the read bit
// set, one dummy byte clocking out the response.
func (t *Transport) ReadRegister(reg byte) (byte, error) {
	tx := [2]byte{reg | spiReadBit, 0x00}
	var rx [2]byte

	t.cs.Low()
	defer t.cs.High()

	if err := t.bus.Tx(tx[:], rx[:]); err != nil {
		return 0, fmt.Errorf("spi read register 0x%02X: %w", reg, err)
	}
	return rx[1], nil
}

// WriteRegister writes a single register: address byte with the read bit
// clear, then the value.
func (t *Transport) WriteRegister(reg, value byte) error {
	tx := [2]byte{reg &^ spiReadBit, value}

	t.cs.Low()
	defer t.cs.High()

	if err := t.bus.Tx(tx[:], nil); err != nil {
		return fmt.Errorf("spi write register 0x%02X: %w", reg, err)
	}
	return nil
}

// ReadRegisterBurst latches the register address and then streams
// len(buffer) bytes out of it in one chip-select window. The data phase
// follows the address byte immediately; the protocol does not tolerate
// dummy bytes in between.
func (t *Transport) ReadRegisterBurst(reg byte, buffer []byte) error {
	addr := [1]byte{reg | spiReadBit}

	t.cs.Low()
	defer t.cs.High()

	if err := t.bus.Tx(addr[:], nil); err != nil {
		return fmt.Errorf("spi burst address 0x%02X: %w", reg, err)
	}
	if err := t.bus.Tx(nil, buffer); err != nil {
		return fmt.Errorf("spi burst read 0x%02X: %w", reg, err)
	}
	return nil
}
