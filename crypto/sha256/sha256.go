// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sha256 implements the SHA-256 hash algorithm as defined in FIPS 180-4.
//
// Compute hashes a text message the way the lookup service does, one byte
// per character (see EncodeMessage). Sum256 and New work on raw bytes.
package sha256

import (
	"encoding/binary"
	"errors"
	"hash"
)

// Compute returns the lowercase hex digest of message.
func Compute(message string) string {
	s := fold(Pad(EncodeMessage(message)))
	return s.render()
}

// Sum256 returns the SHA256 checksum of the data.
func Sum256(data []byte) [Size]byte {
	s := fold(Pad(data))
	return s.sum()
}

// SumString returns the checksum of message encoded by EncodeMessage.
func SumString(message string) [Size]byte {
	return Sum256(EncodeMessage(message))
}

// fold runs every block of a padded message through a fresh state.
func fold(padded []byte) state {
	s := newState()
	blockGeneric(&s, padded)
	return s
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	h   state
	x   [chunk]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing the SHA256 checksum. The Hash also
// implements encoding.BinaryMarshaler and encoding.BinaryUnmarshaler to
// marshal and unmarshal the internal state of the hash.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

func (d *digest) Reset() {
	d.h = newState()
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == chunk {
			blockGeneric(&d.h, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= chunk {
		n := len(p) &^ (chunk - 1)
		blockGeneric(&d.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *digest) Sum(in []byte) []byte {
	// Make a copy of d so that caller can keep writing and summing.
	h := d.h
	blockGeneric(&h, padTail(d.x[:d.nx], d.len<<3))
	sum := h.sum()
	return append(in, sum[:]...)
}

const (
	magic256      = "sha\x03"
	marshaledSize = len(magic256) + 8*4 + chunk + 8
)

func (d *digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic256...)
	for _, v := range d.h {
		b = appendUint32(b, v)
	}
	b = append(b, d.x[:d.nx]...)
	b = b[:len(b)+len(d.x)-d.nx] // already zero
	b = appendUint64(b, d.len)
	return b, nil
}

func (d *digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic256) || string(b[:len(magic256)]) != magic256 {
		return errors.New("crypto/sha256: invalid hash state identifier")
	}
	if len(b) != marshaledSize {
		return errors.New("crypto/sha256: invalid hash state size")
	}
	b = b[len(magic256):]
	for k := range d.h {
		d.h[k] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	b = b[copy(d.x[:], b):]
	d.len = binary.BigEndian.Uint64(b)
	d.nx = int(d.len % chunk)
	return nil
}

func appendUint32(b []byte, v uint32) []byte {
	var a [4]byte
	binary.BigEndian.PutUint32(a[:], v)
	return append(b, a[:]...)
}

func appendUint64(b []byte, v uint64) []byte {
	var a [8]byte
	binary.BigEndian.PutUint64(a[:], v)
	return append(b, a[:]...)
}
