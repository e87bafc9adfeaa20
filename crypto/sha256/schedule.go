package sha256

import (
	"encoding/binary"
	"math/bits"
)

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

func sigma0(x uint32) uint32 {
	return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10)
}

// expand fills w with the message schedule of one block.
func expand(w *[64]uint32, block []byte) {
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		w[i] = w[i-16] + sigma0(w[i-15]) + w[i-7] + sigma1(w[i-2])
	}
}

// Schedule returns the 64-word message schedule of a single block.
// It panics if block is shorter than BlockSize.
func Schedule(block []byte) [64]uint32 {
	var w [64]uint32
	expand(&w, block[:BlockSize])
	return w
}
