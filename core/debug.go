package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// debugPrintln is the global debug print function (set by platform code).
// No-op by default so portable packages can log unconditionally.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the platform-specific debug output function.
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	debugPrintln(msg)
}

// Itoa converts an integer to a string without using the fmt package.
// This is a lightweight alternative for embedded systems.
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	if negative {
		digits++
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// Utoa converts an unsigned integer to a string
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// Ftoa converts a float32 to a fixed-point decimal string with the given
// number of fractional digits. Rounds half away from zero. NaN, infinities
// and values outside the int64 fixed-point range render as "NaN" and "Inf".
func Ftoa(f float32, decimals int) string {
	if f != f {
		return "NaN"
	}

	negative := f < 0
	if negative {
		f = -f
	}

	scale := 1
	for i := 0; i < decimals; i++ {
		scale *= 10
	}

	// int64(x) is unspecified once x no longer fits
	if f*float32(scale) >= 9.2e18 {
		if negative {
			return "-Inf"
		}
		return "Inf"
	}

	// Round to the requested precision in integer space
	scaled := int64(f*float32(scale) + 0.5)
	whole := scaled / int64(scale)
	frac := scaled % int64(scale)

	s := Itoa(int(whole))
	if decimals > 0 {
		fracStr := Itoa(int(frac))
		for len(fracStr) < decimals {
			fracStr = "0" + fracStr
		}
		s += "." + fracStr
	}

	if negative {
		s = "-" + s
	}
	return s
}

// Htoa converts a byte to a two-digit uppercase hex string
func Htoa(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}
