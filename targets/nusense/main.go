//go:build tinygo

package main

import (
	"time"

	"nusense/apps"
	"nusense/core"
	"nusense/crc"
	"nusense/imu"
)

// Task restart delay for the application tasks. The IMU driver has its own,
// longer delay because a restart re-runs the whole chip bring-up.
const appRestartDelay = time.Second

func main() {
	initDebug()
	core.DebugPrintln("[main] NUSense starting")

	// Construction order matters: the USB transport must exist before the
	// application tasks that consume it are started. All peripheral claims
	// happen here, once, and move into their owning drivers.
	conn := initUSB()

	crcProcessor := crc.NewProcessor(newHardwareCRCEngine())

	bus, cs := initIMUSPI()
	transport := imu.NewTransport(bus, cs)
	irq := newIntLine(pinImuInt)
	device := imu.NewDevice(transport, irq, imu.DefaultConfig())

	// Fixed task set; no tasks are created or destroyed after this point.
	// The USB device protocol engine itself runs inside the TinyGo runtime
	// behind machine.Serial, so it does not appear as an explicit task.
	core.StartTask("echo", appRestartDelay, apps.NewEchoApp(conn).Run)
	core.StartTask("crc-demo", appRestartDelay, apps.NewCRCDemoApp(crcProcessor).Run)
	core.StartTask("imu", imu.RestartDelay, device.Run)

	core.DebugPrintln("[main] task set running")
	select {}
}
