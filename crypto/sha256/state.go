package sha256

import (
	"encoding/binary"
	"encoding/hex"
)

// state is the running hash value H0..H7.
type state [8]uint32

func newState() state {
	return state(_H0)
}

// accumulate adds the registers produced by compress into the state.
func (s *state) accumulate(regs [8]uint32) {
	for k := range s {
		s[k] += regs[k]
	}
}

func (s *state) sum() (out [Size]byte) {
	for k, v := range s {
		binary.BigEndian.PutUint32(out[k*4:], v)
	}
	return
}

// render renders the state as 64 lowercase hex characters.
func (s *state) render() string {
	b := s.sum()
	return hex.EncodeToString(b[:])
}
