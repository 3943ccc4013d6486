// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"encoding/binary"
	"math/bits"
)

// The hash is a 4-lane multiply-mix construction over 32-byte blocks. It is
// not cryptographic; the contract is speed, seed sensitivity, and bit-exact
// agreement between the one-shot and streaming paths on every tier.

const hashBlockLen = 32

var hashSecret = [4]uint64{
	0xa0761d6478bd642f,
	0xe7037ed1a0b428db,
	0x8ebc6af09c88c6e3,
	0x589965cc75374cc3,
}

// hashState carries the running lanes of a streaming hash. total counts every
// byte consumed, including a trailing partial block.
type hashState struct {
	acc   [4]uint64
	total uint64
}

func mix64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

func serialHashInit(s *hashState, seed uint64) {
	for i := range s.acc {
		s.acc[i] = seed ^ hashSecret[i]
	}
	s.total = 0
}

func serialHashUpdate(s *hashState, block *[hashBlockLen]byte) {
	for j := range s.acc {
		w := binary.LittleEndian.Uint64(block[8*j:])
		s.acc[j] = mix64(s.acc[j]^w, hashSecret[j])
	}
}

func serialHashDigest(s *hashState) uint64 {
	h := mix64(s.acc[0]^s.acc[1], hashSecret[0]^hashSecret[2])
	h ^= mix64(s.acc[2]^s.acc[3], hashSecret[1]^hashSecret[3])
	return mix64(h^s.total, hashSecret[0])
}

func serialHash(data []byte, seed uint64) uint64 {
	var s hashState
	serialHashInit(&s, seed)
	var block [hashBlockLen]byte
	for len(data) >= hashBlockLen {
		copy(block[:], data[:hashBlockLen])
		serialHashUpdate(&s, &block)
		s.total += hashBlockLen
		data = data[hashBlockLen:]
	}
	if len(data) > 0 {
		block = [hashBlockLen]byte{}
		copy(block[:], data)
		serialHashUpdate(&s, &block)
		s.total += uint64(len(data))
	}
	return serialHashDigest(&s)
}

// Hasher is the streaming counterpart of Hash. It implements hash.Hash64.
type Hasher struct {
	st   hashState
	buf  [hashBlockLen]byte
	n    int
	seed uint64
}

// NewHasher returns a streaming hasher producing the same digest as
// Hash(data, seed) for the concatenation of all written bytes.
func NewHasher(seed uint64) *Hasher {
	h := &Hasher{seed: seed}
	h.Reset()
	return h
}

// Reset restores the hasher to its freshly-seeded state.
func (h *Hasher) Reset() {
	current().hashInit(&h.st, h.seed)
	h.n = 0
}

// Write absorbs p. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	t := current()
	written := len(p)
	if h.n > 0 {
		c := copy(h.buf[h.n:], p)
		h.n += c
		p = p[c:]
		if h.n == hashBlockLen {
			t.hashUpdate(&h.st, &h.buf)
			h.st.total += hashBlockLen
			h.n = 0
		}
	}
	for len(p) >= hashBlockLen {
		var block [hashBlockLen]byte
		copy(block[:], p[:hashBlockLen])
		t.hashUpdate(&h.st, &block)
		h.st.total += hashBlockLen
		p = p[hashBlockLen:]
	}
	h.n += copy(h.buf[:], p)
	return written, nil
}

// Sum64 digests the bytes written so far. It does not disturb the running
// state; more bytes may be written afterwards.
func (h *Hasher) Sum64() uint64 {
	t := current()
	st := h.st
	if h.n > 0 {
		var block [hashBlockLen]byte
		copy(block[:], h.buf[:h.n])
		t.hashUpdate(&st, &block)
		st.total += uint64(h.n)
	}
	return t.hashDigest(&st)
}

// Sum appends the big-endian digest to b, satisfying hash.Hash.
func (h *Hasher) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, h.Sum64())
}

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return 8 }

// BlockSize returns the hasher's internal block length.
func (h *Hasher) BlockSize() int { return hashBlockLen }

// splitmix64 is the output function of the deterministic fill-random stream.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func serialFillRandom(dst []byte, nonce uint64) {
	i := 0
	ctr := uint64(0)
	for ; i+8 <= len(dst); i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], splitmix64(nonce+ctr))
		ctr++
	}
	if i < len(dst) {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], splitmix64(nonce+ctr))
		copy(dst[i:], tail[:])
	}
}
