// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"encoding/binary"
	"math/bits"
)

// Word-parallel (SWAR) kernels, processing 8 bytes per step. These are the
// Go bodies the accelerated tiers bind; they must agree bit-for-bit with the
// serial baseline on every input.

const (
	swarLoBits = 0x0101010101010101
	swarHiBits = 0x8080808080808080
)

func wordEqual(a, b []byte) bool {
	i := 0
	for ; i+8 <= len(a); i += 8 {
		if binary.LittleEndian.Uint64(a[i:]) != binary.LittleEndian.Uint64(b[i:]) {
			return false
		}
	}
	for ; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func wordOrder(a, b []byte) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		wa := binary.LittleEndian.Uint64(a[i:])
		wb := binary.LittleEndian.Uint64(b[i:])
		if x := wa ^ wb; x != 0 {
			k := i + bits.TrailingZeros64(x)>>3
			if a[k] < b[k] {
				return OrderLess
			}
			return OrderGreater
		}
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return OrderLess
			}
			return OrderGreater
		}
	}
	switch {
	case len(a) < len(b):
		return OrderLess
	case len(a) > len(b):
		return OrderGreater
	default:
		return OrderEqual
	}
}

func wordFill(dst []byte, v byte) {
	w := uint64(v) * swarLoBits
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], w)
	}
	for ; i < len(dst); i++ {
		dst[i] = v
	}
}

// zeroByteMask has the high bit set in every byte lane of w that is zero.
func zeroByteMask(w uint64) uint64 {
	return (w - swarLoBits) & ^w & swarHiBits
}

func wordFindByte(h []byte, n byte) int {
	target := uint64(n) * swarLoBits
	i := 0
	for ; i+8 <= len(h); i += 8 {
		w := binary.LittleEndian.Uint64(h[i:]) ^ target
		if m := zeroByteMask(w); m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
	}
	for ; i < len(h); i++ {
		if h[i] == n {
			return i
		}
	}
	return -1
}

func wordRFindByte(h []byte, n byte) int {
	target := uint64(n) * swarLoBits
	i := len(h)
	for i >= 8 {
		i -= 8
		w := binary.LittleEndian.Uint64(h[i:]) ^ target
		if m := zeroByteMask(w); m != 0 {
			return i + (63-bits.LeadingZeros64(m))>>3
		}
	}
	for i--; i >= 0; i-- {
		if h[i] == n {
			return i
		}
	}
	return -1
}

func wordFind(h, n []byte) int {
	switch {
	case len(n) == 0:
		return 0
	case len(n) > len(h):
		return -1
	case len(n) == 1:
		return wordFindByte(h, n[0])
	}
	last := n[len(n)-1]
	offset := 0
	for {
		i := wordFindByte(h[offset:len(h)-len(n)+1], n[0])
		if i < 0 {
			return -1
		}
		i += offset
		if h[i+len(n)-1] == last && wordEqual(h[i+1:i+len(n)-1], n[1:len(n)-1]) {
			return i
		}
		offset = i + 1
	}
}

func wordRFind(h, n []byte) int {
	switch {
	case len(n) == 0:
		return len(h)
	case len(n) > len(h):
		return -1
	case len(n) == 1:
		return wordRFindByte(h, n[0])
	}
	last := n[len(n)-1]
	limit := len(h) - len(n) + 1
	for limit > 0 {
		i := wordRFindByte(h[:limit], n[0])
		if i < 0 {
			return -1
		}
		if h[i+len(n)-1] == last && wordEqual(h[i+1:i+len(n)-1], n[1:len(n)-1]) {
			return i
		}
		limit = i
	}
	return -1
}

func wordBytesum(data []byte) uint64 {
	var total uint64
	i := 0
	for ; i+8 <= len(data); i += 8 {
		w := binary.LittleEndian.Uint64(data[i:])
		s := (w & 0x00FF00FF00FF00FF) + ((w >> 8) & 0x00FF00FF00FF00FF)
		s = (s & 0x0000FFFF0000FFFF) + ((s >> 16) & 0x0000FFFF0000FFFF)
		total += (s & 0xFFFFFFFF) + (s >> 32)
	}
	for ; i < len(data); i++ {
		total += uint64(data[i])
	}
	return total
}

// unrolledBytesum splits the word stream across four accumulators to keep
// more of the load pipeline busy on wide cores.
func unrolledBytesum(data []byte) uint64 {
	var t0, t1, t2, t3 uint64
	i := 0
	for ; i+32 <= len(data); i += 32 {
		t0 += sumWordBytes(binary.LittleEndian.Uint64(data[i:]))
		t1 += sumWordBytes(binary.LittleEndian.Uint64(data[i+8:]))
		t2 += sumWordBytes(binary.LittleEndian.Uint64(data[i+16:]))
		t3 += sumWordBytes(binary.LittleEndian.Uint64(data[i+24:]))
	}
	total := t0 + t1 + t2 + t3
	return total + wordBytesum(data[i:])
}

func sumWordBytes(w uint64) uint64 {
	s := (w & 0x00FF00FF00FF00FF) + ((w >> 8) & 0x00FF00FF00FF00FF)
	s = (s & 0x0000FFFF0000FFFF) + ((s >> 16) & 0x0000FFFF0000FFFF)
	return (s & 0xFFFFFFFF) + (s >> 32)
}

// unrolledFillRandom emits the same splitmix64 stream as the serial kernel,
// four words per step.
func unrolledFillRandom(dst []byte, nonce uint64) {
	i := 0
	ctr := uint64(0)
	for ; i+32 <= len(dst); i += 32 {
		binary.LittleEndian.PutUint64(dst[i:], splitmix64(nonce+ctr))
		binary.LittleEndian.PutUint64(dst[i+8:], splitmix64(nonce+ctr+1))
		binary.LittleEndian.PutUint64(dst[i+16:], splitmix64(nonce+ctr+2))
		binary.LittleEndian.PutUint64(dst[i+24:], splitmix64(nonce+ctr+3))
		ctr += 4
	}
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
