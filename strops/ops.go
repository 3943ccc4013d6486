// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

// Ordering is the result of a lexicographic comparison.
type Ordering int

const (
	OrderLess    Ordering = -1
	OrderEqual   Ordering = 0
	OrderGreater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "less"
	case OrderGreater:
		return "greater"
	default:
		return "equal"
	}
}

// Byteset is a 256-bit membership set over byte values, used by the
// byteset-search operations. The zero value is the empty set.
type Byteset struct {
	bits [4]uint64
}

// NewByteset builds a set containing every byte of chars.
func NewByteset(chars []byte) Byteset {
	var s Byteset
	for _, c := range chars {
		s.Add(c)
	}
	return s
}

// Add inserts b into the set.
func (s *Byteset) Add(b byte) { s.bits[b>>6] |= 1 << (b & 63) }

// Contains reports membership of b.
func (s *Byteset) Contains(b byte) bool { return s.bits[b>>6]&(1<<(b&63)) != 0 }

// Invert flips membership of every byte value.
func (s *Byteset) Invert() {
	for i := range s.bits {
		s.bits[i] = ^s.bits[i]
	}
}

// Sequence is an ordered collection of byte strings, the shape consumed by
// the sorting and intersection operations. tape.Tape satisfies it.
type Sequence interface {
	Count() int
	At(i int) []byte
}

// The public entry points below forward unconditionally to the current
// dispatch-table slot. All tier logic is resolved at table-build time, so a
// call pays one indirect call and no capability checks.

// Equal reports whether a and b hold the same bytes.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return current().equal(a, b)
}

// Order compares a and b lexicographically.
func Order(a, b []byte) Ordering { return current().order(a, b) }

// CopyBytes copies src into dst. The ranges must not overlap; use MoveBytes
// when they may.
func CopyBytes(dst, src []byte) { current().copyBytes(dst, src) }

// MoveBytes copies src into dst, handling overlapping ranges.
func MoveBytes(dst, src []byte) { current().moveBytes(dst, src) }

// Fill sets every byte of dst to v.
func Fill(dst []byte, v byte) { current().fill(dst, v) }

// Lookup maps every byte of src through lut into dst. dst and src may alias
// exactly (in-place transform) but must not partially overlap.
func Lookup(dst, src []byte, lut *[256]byte) { current().lookup(dst, src, lut) }

// Bytesum returns the sum of all byte values in data.
func Bytesum(data []byte) uint64 { return current().bytesum(data) }

// Hash returns a 64-bit seeded hash of data. The result is identical across
// tiers and equal to what a Hasher with the same seed digests.
func Hash(data []byte, seed uint64) uint64 { return current().hash(data, seed) }

// FillRandom fills dst with a deterministic pseudo-random byte stream derived
// from nonce. The stream is identical across tiers.
func FillRandom(dst []byte, nonce uint64) { current().fillRandom(dst, nonce) }

// FindByte returns the index of the first occurrence of n in haystack, or -1.
func FindByte(haystack []byte, n byte) int { return current().findByte(haystack, n) }

// RFindByte returns the index of the last occurrence of n in haystack, or -1.
func RFindByte(haystack []byte, n byte) int { return current().rfindByte(haystack, n) }

// Find returns the index of the first occurrence of needle in haystack, or
// -1. An empty needle matches at index 0.
func Find(haystack, needle []byte) int { return current().find(haystack, needle) }

// RFind returns the index of the last occurrence of needle in haystack, or
// -1. An empty needle matches at index len(haystack).
func RFind(haystack, needle []byte) int { return current().rfind(haystack, needle) }

// FindByteset returns the index of the first byte of haystack contained in
// set, or -1.
func FindByteset(haystack []byte, set *Byteset) int { return current().findByteset(haystack, set) }

// RFindByteset returns the index of the last byte of haystack contained in
// set, or -1.
func RFindByteset(haystack []byte, set *Byteset) int { return current().rfindByteset(haystack, set) }

// SequenceArgsort computes the permutation that sorts seq lexicographically.
// order must have exactly seq.Count() entries; order[k] receives the index of
// the k-th smallest string. Scratch comes from alloc (nil for the runtime
// allocator).
func SequenceArgsort(seq Sequence, alloc Allocator, order []uint64) error {
	return current().sequenceArgsort(seq, alloc, order)
}

// PgramsSort sorts pgrams in place and records the applied permutation in
// order, which must have exactly len(pgrams) entries.
func PgramsSort(pgrams []uint64, alloc Allocator, order []uint64) error {
	return current().pgramsSort(pgrams, alloc, order)
}

// SequenceIntersect finds the strings common to a and b, writing for each
// match the position in a to aPos and the position in b to bPos, in a's
// original order. Inputs are treated as sets: duplicate members count once,
// at their first position. Returns the number of matches written. aPos and
// bPos must each hold at least min(a.Count(), b.Count()) entries.
func SequenceIntersect(a, b Sequence, alloc Allocator, aPos, bPos []uint64) (int, error) {
	return current().sequenceIntersect(a, b, alloc, aPos, bPos)
}

// Pgram packs the leading bytes of s into a big-endian uint64 so that
// comparing pgrams numerically agrees with comparing the first 8 bytes of
// the source strings lexicographically. Strings sharing their first 8 bytes
// pack to equal pgrams and need full comparison to be ordered.
func Pgram(s []byte) uint64 {
	var p uint64
	n := len(s)
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		p |= uint64(s[i]) << (56 - 8*i)
	}
	return p
}
