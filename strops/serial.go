// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

// Serial baseline kernels: portable, always correct, bound to every slot
// before any tier overlay runs. Accelerated variants must produce
// byte-identical results.

func serialEqual(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func serialOrder(a, b []byte) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
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

// serialCopy and serialMove both lower to the runtime's copy, which already
// handles overlap; the distinction is kept because accelerated overlays may
// bind a forward-only kernel to the copy slot.
func serialCopy(dst, src []byte) { copy(dst, src) }

func serialMove(dst, src []byte) { copy(dst, src) }

func serialFill(dst []byte, v byte) {
	for i := range dst {
		dst[i] = v
	}
}

func serialLookup(dst, src []byte, lut *[256]byte) {
	for i, c := range src {
		dst[i] = lut[c]
	}
}

func serialBytesum(data []byte) uint64 {
	var sum uint64
	for _, c := range data {
		sum += uint64(c)
	}
	return sum
}

func serialFindByte(h []byte, n byte) int {
	for i := 0; i < len(h); i++ {
		if h[i] == n {
			return i
		}
	}
	return -1
}

func serialRFindByte(h []byte, n byte) int {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i] == n {
			return i
		}
	}
	return -1
}

// serialFind anchors on the needle's first and last byte before paying for a
// full comparison of the middle.
func serialFind(h, n []byte) int {
	switch {
	case len(n) == 0:
		return 0
	case len(n) > len(h):
		return -1
	case len(n) == 1:
		return serialFindByte(h, n[0])
	}
	first, last := n[0], n[len(n)-1]
	for i := 0; i+len(n) <= len(h); i++ {
		if h[i] != first || h[i+len(n)-1] != last {
			continue
		}
		if serialEqual(h[i+1:i+len(n)-1], n[1:len(n)-1]) {
			return i
		}
	}
	return -1
}

func serialRFind(h, n []byte) int {
	switch {
	case len(n) == 0:
		return len(h)
	case len(n) > len(h):
		return -1
	case len(n) == 1:
		return serialRFindByte(h, n[0])
	}
	first, last := n[0], n[len(n)-1]
	for i := len(h) - len(n); i >= 0; i-- {
		if h[i] != first || h[i+len(n)-1] != last {
			continue
		}
		if serialEqual(h[i+1:i+len(n)-1], n[1:len(n)-1]) {
			return i
		}
	}
	return -1
}

func serialFindByteset(h []byte, set *Byteset) int {
	for i := 0; i < len(h); i++ {
		if set.Contains(h[i]) {
			return i
		}
	}
	return -1
}

func serialRFindByteset(h []byte, set *Byteset) int {
	for i := len(h) - 1; i >= 0; i-- {
		if set.Contains(h[i]) {
			return i
		}
	}
	return -1
}
