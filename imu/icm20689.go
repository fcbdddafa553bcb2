// Package imu drives the ICM-20689 6-axis IMU over SPI: register-level
// bring-up, interrupt-driven FIFO batch acquisition at 1000Hz, and scaling
// of raw readings to physical units.
package imu

import (
	"encoding/binary"
	"errors"
	"time"

	"nusense/core"
)

// ErrDeviceNotFound means the identity check failed during initialization:
// the chip on the bus is not an ICM-20689 or is not responding. The current
// initialization attempt is abandoned and the driver is restarted by its
// task wrapper after RestartDelay.
var ErrDeviceNotFound = errors.New("imu: device not found (wrong chip identity)")

const (
	// PacketSize is the fixed FIFO record size: 3×int16 accel, int16
	// temperature, 3×int16 gyro, all big-endian.
	PacketSize = 14

	// maxPackets sizes the read buffer to absorb FIFO bursts.
	maxPackets     = 20
	fifoBufferSize = PacketSize * maxPackets

	// RestartDelay is how long the task wrapper waits before re-running
	// initialization after a driver failure.
	RestartDelay = 5 * time.Second

	statsInterval = time.Second
)

// Device is the ICM-20689 driver. It owns the SPI transport and the data
// ready interrupt line for the lifetime of the program.
//
// The driver moves through uninitialized → initializing → streaming; any
// initialization fault is returned from Run so the supervising task can
// restart the whole driver, while per-cycle SPI faults during streaming are
// logged and skipped.
type Device struct {
	transport *Transport
	irq       core.IntLine
	config    Config

	// Streaming state: latest sample overwritten each cycle, plus the
	// per-interval sample counter for the diagnostic log.
	latest      Data
	sampleCount uint32

	fifoBuffer [fifoBufferSize]byte
}

// NewDevice creates an ICM-20689 driver. The transport and interrupt line
// are claimed by the device and must not be shared.
func NewDevice(transport *Transport, irq core.IntLine, config Config) *Device {
	return &Device{
		transport: transport,
		irq:       irq,
		config:    config,
	}
}

// initialize brings the chip from power-on to streaming configuration. The
// step order matters: each register write depends on the state left by the
// previous one.
func (d *Device) initialize() error {
	// 1. Device reset, then let the chip come back up
	if err := d.transport.WriteRegister(regPwrMgmt1, bitDeviceReset); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)

	// 2. Identity check
	chipID, err := d.transport.ReadRegister(regWhoAmI)
	if err != nil {
		return err
	}
	if chipID != whoAmIExpected {
		core.DebugPrintln("[imu] wrong chip identity: expected 0x" +
			core.Htoa(whoAmIExpected) + ", got 0x" + core.Htoa(chipID))
		return ErrDeviceNotFound
	}

	// 3. Disable the legacy I2C interface; SPI only from here on
	if err := d.transport.WriteRegister(regUserCtrl, bitI2CDisable); err != nil {
		return err
	}

	// 4. Select the PLL clock source (required for full gyro rate) and
	// wait for lock
	if err := d.transport.WriteRegister(regPwrMgmt1, clkSelPLL); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)

	// 5. Enable both sensor subsystems, no low-power modes
	if err := d.transport.WriteRegister(regPwrMgmt2, allSensorsOn); err != nil {
		return err
	}

	// 6. DLPF bandwidth and sample rate divider. With the DLPF enabled the
	// internal rate is 1000Hz, so a divider of 0 gives 1000Hz output.
	if err := d.transport.WriteRegister(regConfig, dlpfBandwidth); err != nil {
		return err
	}
	if err := d.transport.WriteRegister(regSmplrtDiv, sampleRateDiv); err != nil {
		return err
	}

	// 7. Full-scale ranges from the driver configuration
	if err := d.transport.WriteRegister(regAccelConfig, byte(d.config.AccelRange)); err != nil {
		return err
	}
	if err := d.transport.WriteRegister(regAccelConfig2, accelDlpfBandwidth); err != nil {
		return err
	}
	if err := d.transport.WriteRegister(regGyroConfig, byte(d.config.GyroRange)); err != nil {
		return err
	}

	// 8. Reset the FIFO, give it time to settle, then enable it for
	// temperature + gyro + accel
	if err := d.transport.WriteRegister(regUserCtrl, bitFifoReset|bitI2CDisable); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := d.transport.WriteRegister(regFifoEn, fifoTempGyroAccel); err != nil {
		return err
	}
	if err := d.transport.WriteRegister(regUserCtrl, bitFifoEnable|bitI2CDisable); err != nil {
		return err
	}

	// 9. Interrupt pin: active low, push-pull, latched until any read
	if err := d.transport.WriteRegister(regIntPinCfg, intPinActiveLowLatched); err != nil {
		return err
	}

	// 10. Data ready interrupt source (not FIFO overflow)
	if err := d.transport.WriteRegister(regIntEnable, intEnableDataReady); err != nil {
		return err
	}

	return nil
}

// ReadFIFOCount returns the number of bytes currently queued in the chip's
// FIFO.
func (d *Device) ReadFIFOCount() (uint16, error) {
	var count [2]byte
	if err := d.transport.ReadRegisterBurst(regFifoCountH, count[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(count[:]), nil
}

// ReadFIFOBatch drains up to len(buffer) bytes from the FIFO and returns the
// number of bytes read. A zero-length read is a valid no-op cycle, not an
// error.
func (d *Device) ReadFIFOBatch(buffer []byte) (int, error) {
	count, err := d.ReadFIFOCount()
	if err != nil {
		return 0, err
	}

	n := len(buffer)
	if int(count) < n {
		n = int(count)
	}
	if n == 0 {
		return 0, nil
	}

	if err := d.transport.ReadRegisterBurst(regFifoRW, buffer[:n]); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseFIFOPacket decodes one raw FIFO record into physical units using the
// configured range scale factors.
func (d *Device) ParseFIFOPacket(packet *[PacketSize]byte) Data {
	rawAccel := [3]int16{
		int16(binary.BigEndian.Uint16(packet[0:2])),
		int16(binary.BigEndian.Uint16(packet[2:4])),
		int16(binary.BigEndian.Uint16(packet[4:6])),
	}
	rawTemp := int16(binary.BigEndian.Uint16(packet[6:8]))
	rawGyro := [3]int16{
		int16(binary.BigEndian.Uint16(packet[8:10])),
		int16(binary.BigEndian.Uint16(packet[10:12])),
		int16(binary.BigEndian.Uint16(packet[12:14])),
	}

	accelScale := d.config.AccelRange.Scale()
	gyroScale := d.config.GyroRange.Scale()

	return Data{
		Accel: [3]float32{
			float32(rawAccel[0]) * accelScale,
			float32(rawAccel[1]) * accelScale,
			float32(rawAccel[2]) * accelScale,
		},
		Gyro: [3]float32{
			float32(rawGyro[0]) * gyroScale,
			float32(rawGyro[1]) * gyroScale,
			float32(rawGyro[2]) * gyroScale,
		},
		Temperature: scaleTemperature(rawTemp),
	}
}

// processBatch parses every whole packet in buf, overwriting the latest
// sample slot for each. Trailing bytes that do not form a complete packet
// are dropped for this cycle. Returns the number of packets parsed.
func (d *Device) processBatch(buf []byte) int {
	packets := 0
	for start := 0; start+PacketSize <= len(buf); start += PacketSize {
		packet := (*[PacketSize]byte)(buf[start : start+PacketSize])
		d.latest = d.ParseFIFOPacket(packet)
		d.sampleCount++
		packets++
	}
	return packets
}

// Run initializes the chip and streams samples forever. It returns only on
// an initialization failure; the supervising task restarts the driver after
// RestartDelay. SPI faults during a streaming cycle are logged and the loop
// resumes with the next interrupt.
func (d *Device) Run() error {
	core.DebugPrintln("[imu] initializing ICM-20689")
	if err := d.initialize(); err != nil {
		core.DebugPrintln("[imu] initialization failed: " + err.Error())
		return err
	}
	core.DebugPrintln("[imu] initialized, starting 1000Hz acquisition")

	d.sampleCount = 0
	lastLog := time.Now()

	for {
		// The data ready interrupt is the task's pacing point
		d.irq.Wait()

		n, err := d.ReadFIFOBatch(d.fifoBuffer[:])
		if err != nil {
			core.DebugPrintln("[imu] fifo read error: " + err.Error())
		} else if n > 0 {
			d.processBatch(d.fifoBuffer[:n])
		}

		// Wall-clock comparison rather than a fixed-period timer: a slow
		// cycle just stretches the interval
		if now := time.Now(); now.Sub(lastLog) >= statsInterval {
			d.logStats(now.Sub(lastLog))
			lastLog = now
		}
	}
}

func (d *Device) logStats(elapsed time.Duration) {
	core.DebugPrintln("[imu] " + core.Utoa(d.sampleCount) + " samples in " +
		core.Itoa(int(elapsed/time.Millisecond)) + "ms" +
		" | accel m/s2 [" + core.Ftoa(d.latest.Accel[0], 2) + ", " +
		core.Ftoa(d.latest.Accel[1], 2) + ", " + core.Ftoa(d.latest.Accel[2], 2) + "]" +
		" | gyro rad/s [" + core.Ftoa(d.latest.Gyro[0], 3) + ", " +
		core.Ftoa(d.latest.Gyro[1], 3) + ", " + core.Ftoa(d.latest.Gyro[2], 3) + "]" +
		" | temp " + core.Ftoa(d.latest.Temperature, 1) + "C")
	d.sampleCount = 0
}
