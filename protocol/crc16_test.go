package protocol

import (
	"math/rand"
	"testing"
)

func TestCRC16KnownVectors(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected [2]byte
	}{
		{
			name:     "read instruction",
			data:     []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x02, 0x00, 0x00, 0x02, 0x00},
			expected: [2]byte{0x21, 0x51},
		},
		{
			name:     "ping instruction",
			data:     []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x03, 0x00, 0x01},
			expected: [2]byte{0x19, 0x4E},
		},
		{
			name:     "write instruction",
			data:     []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x09, 0x00, 0x03, 0x74, 0x00, 0x00, 0x02, 0x00, 0x00},
			expected: [2]byte{0xCA, 0x89},
		},
		{
			name:     "empty input",
			data:     []byte{},
			expected: [2]byte{0x00, 0x00},
		},
	}

	for _, tc := range testCases {
		result := CRCBytes(CRC16(tc.data))
		if result != tc.expected {
			t.Errorf("%s: CRC16 = [%02X %02X], expected [%02X %02X]",
				tc.name, result[0], result[1], tc.expected[0], tc.expected[1])
		}
	}
}

func TestCRC16Consistency(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x03, 0x00, 0x01}

	crc1 := CRC16(data)
	crc2 := CRC16(data)

	if crc1 != crc2 {
		t.Errorf("CRC16 not consistent: first=%04X, second=%04X", crc1, crc2)
	}
}

func TestCRC16Sensitivity(t *testing.T) {
	// Corrupting any single byte of a known vector must change the CRC
	data := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x02, 0x00, 0x00, 0x02, 0x00}
	original := CRC16(data)

	for i := range data {
		corrupted := make([]byte, len(data))
		copy(corrupted, data)
		corrupted[i] ^= 0x01

		if CRC16(corrupted) == original {
			t.Errorf("corrupting byte %d did not change CRC %04X", i, original)
		}
	}
}

func TestCRC16BitwiseAgreement(t *testing.T) {
	// Table and bitwise forms must agree for all inputs, including empty
	rng := rand.New(rand.NewSource(1))

	for length := 0; length <= 64; length++ {
		buf := make([]byte, length)
		rng.Read(buf)

		table := CRC16(buf)
		bitwise := CRC16Bitwise(buf)
		if table != bitwise {
			t.Fatalf("len=%d: table CRC %04X != bitwise CRC %04X", length, table, bitwise)
		}
	}
}

func BenchmarkCRC16(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CRC16(data)
	}
}
