package sha256

import "unicode/utf8"

// EncodeMessage converts s into the code units fed to the engine.
//
// Every character contributes exactly one byte: the low 8 bits of its
// code point. Characters above U+00FF are therefore truncated rather than
// UTF-8 encoded, so "é" hashes as 0xe9 and "ā" (U+0101) as 0x01. A byte
// that is not part of a valid UTF-8 sequence is kept as is.
func EncodeMessage(s string) []byte {
	buf := make([]byte, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, s[0])
		} else {
			buf = append(buf, byte(r))
		}
		s = s[size:]
	}
	return buf
}
