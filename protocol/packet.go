package protocol

// Dynamixel 2.0 instruction packet layout:
//   [0xFF 0xFF 0xFD 0x00] [ID] [LEN_L LEN_H] [INST] [PARAMS...] [CRC_L CRC_H]
// LEN counts everything after the length field itself (instruction, params
// and the two CRC bytes).

// Packet header bytes (0xFF 0xFF 0xFD) followed by the reserved byte.
var Header = [4]byte{0xFF, 0xFF, 0xFD, 0x00}

// Instruction codes used by the firmware and host tooling.
const (
	InstPing  = 0x01
	InstRead  = 0x02
	InstWrite = 0x03
)

// Minimum packet length: header(4) + id(1) + len(2) + inst(1) + crc(2).
const MinPacketLen = 10

// BuildPacket assembles a complete instruction packet for the given device
// ID, instruction and parameters, with the CRC appended.
func BuildPacket(id byte, instruction byte, params []byte) []byte {
	// length field covers instruction + params + 2 CRC bytes
	length := uint16(len(params) + 3)

	packet := make([]byte, 0, MinPacketLen+len(params))
	packet = append(packet, Header[:]...)
	packet = append(packet, id)
	packet = append(packet, byte(length), byte(length>>8))
	packet = append(packet, instruction)
	packet = append(packet, params...)
	return AppendCRC(packet)
}

// AppendCRC appends the two-byte little-endian CRC of packet to packet and
// returns the extended slice.
func AppendCRC(packet []byte) []byte {
	crc := CRCBytes(CRC16(packet))
	return append(packet, crc[0], crc[1])
}

// VerifyCRC checks the trailing two-byte CRC of a complete packet. Packets
// shorter than the minimum length never verify.
func VerifyCRC(packet []byte) bool {
	if len(packet) < MinPacketLen {
		return false
	}
	body := packet[:len(packet)-2]
	crc := CRCBytes(CRC16(body))
	return packet[len(packet)-2] == crc[0] && packet[len(packet)-1] == crc[1]
}
