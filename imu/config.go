package imu

import "math"

// Standard gravity, used to convert g to m/s².
const gravity = 9.80665

// AccelRange selects the accelerometer full-scale range. Values are the
// ACCEL_CONFIG register encoding (bits [4:3]).
type AccelRange uint8

const (
	Accel2G  AccelRange = 0b00 << 3
	Accel4G  AccelRange = 0b01 << 3
	Accel8G  AccelRange = 0b10 << 3
	Accel16G AccelRange = 0b11 << 3
)

// lsbPerG returns the datasheet sensitivity for the range in LSB/g.
func (r AccelRange) lsbPerG() float32 {
	switch r {
	case Accel2G:
		return 16384.0
	case Accel4G:
		return 8192.0
	case Accel8G:
		return 4096.0
	default: // Accel16G
		return 2048.0
	}
}

// Scale returns the multiplier converting a raw accelerometer reading to
// m/s² for this range.
func (r AccelRange) Scale() float32 {
	return gravity / r.lsbPerG()
}

// GyroRange selects the gyroscope full-scale range. Values are the
// GYRO_CONFIG register encoding (bits [4:3]).
type GyroRange uint8

const (
	Gyro250DPS  GyroRange = 0b00 << 3
	Gyro500DPS  GyroRange = 0b01 << 3
	Gyro1000DPS GyroRange = 0b10 << 3
	Gyro2000DPS GyroRange = 0b11 << 3
)

// lsbPerDPS returns the datasheet sensitivity for the range in LSB/(°/s).
func (r GyroRange) lsbPerDPS() float32 {
	switch r {
	case Gyro250DPS:
		return 131.0
	case Gyro500DPS:
		return 65.5
	case Gyro1000DPS:
		return 32.8
	default: // Gyro2000DPS
		return 16.4
	}
}

// Scale returns the multiplier converting a raw gyroscope reading to rad/s
// for this range.
func (r GyroRange) Scale() float32 {
	return (math.Pi / 180.0) / r.lsbPerDPS()
}

// Config holds the chip configuration. It is fixed at driver construction;
// the scale factors applied at parse time are a pure function of the active
// ranges.
type Config struct {
	AccelRange AccelRange
	GyroRange  GyroRange
}

// DefaultConfig returns the standard NUSense configuration: ±4g, ±500°/s.
func DefaultConfig() Config {
	return Config{
		AccelRange: Accel4G,
		GyroRange:  Gyro500DPS,
	}
}

// Data is one scaled sensor sample in physical units.
type Data struct {
	// Acceleration in m/s² (X, Y, Z)
	Accel [3]float32
	// Angular velocity in rad/s (X, Y, Z)
	Gyro [3]float32
	// Temperature in °C
	Temperature float32
}

// scaleTemperature converts a raw temperature reading to °C using the
// datasheet formula.
func scaleTemperature(raw int16) float32 {
	return float32(raw)/333.87 + 21.0
}
