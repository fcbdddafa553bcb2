//go:build tinygo

package main

import (
	"machine"

	"tinygo.org/x/drivers"

	"nusense/core"
)

// IMU wiring on the NUSense board. The chip select is software controlled;
// the ICM-20689 wants SPI mode 3 and tops out at 8MHz.
const (
	pinImuCS   = machine.PE11
	pinImuSCK  = machine.PE12
	pinImuMISO = machine.PE13
	pinImuMOSI = machine.PE14
	pinImuInt  = machine.PE10

	imuSPIFrequency = 8_000_000
	imuSPIMode      = 3
)

// outputPin adapts machine.Pin to core.OutputPin.
type outputPin struct {
	pin machine.Pin
}

func (p outputPin) High() { p.pin.High() }
func (p outputPin) Low()  { p.pin.Low() }

// initIMUSPI configures the IMU's SPI bus and claims the chip select pin.
// Called once at startup; the returned bus and pin move into the IMU
// transport.
func initIMUSPI() (drivers.SPI, core.OutputPin) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		Frequency: imuSPIFrequency,
		SCK:       pinImuSCK,
		SDO:       pinImuMOSI,
		SDI:       pinImuMISO,
		Mode:      imuSPIMode,
	})
	if err != nil {
		// A misconfigured bus is unrecoverable board wiring, not a
		// transient fault
		panic("imu spi configure: " + err.Error())
	}

	cs := outputPin{pin: pinImuCS}
	cs.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()

	return spi, cs
}
