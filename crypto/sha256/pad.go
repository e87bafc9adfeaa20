package sha256

import "encoding/binary"

// PaddedLen returns the length of Pad(msg) for a message of n bytes.
func PaddedLen(n int) int {
	// one 0x80 byte plus the length field, rounded up to a whole block
	return (n + 1 + lengthSize + chunk - 1) / chunk * chunk
}

// Pad appends the padding to msg: a single 1 bit, zero bits until the
// length is 448 mod 512, then the original length in bits as a 64-bit
// big-endian integer. The result is always a whole number of blocks.
// msg is not modified.
func Pad(msg []byte) []byte {
	return padTail(msg, uint64(len(msg))<<3)
}

// padTail pads the unprocessed tail of a message whose total length,
// including blocks already compressed, is bitLen bits.
func padTail(tail []byte, bitLen uint64) []byte {
	out := make([]byte, PaddedLen(len(tail)))
	copy(out, tail)
	out[len(tail)] = 0x80
	binary.BigEndian.PutUint64(out[len(out)-lengthSize:], bitLen)
	return out
}
