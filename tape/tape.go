// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

// Package tape implements a columnar encoding of many variable-length byte
// strings: one contiguous data buffer plus an offsets array with count+1
// entries delimiting the substrings. Batches cross the similarity backends
// in this shape with no per-string allocation, and the layout is directly
// compatible with Arrow-style string columns.
package tape

import "errors"

// ErrInvalidShape reports an offsets array that does not describe the data
// buffer: wrong entry count, non-monotonic entries, nonzero start, or a last
// entry that differs from the buffer length.
var ErrInvalidShape = errors.New("tape: offsets do not describe data buffer")

// Offsets constrains the offset element width. 32-bit offsets halve the
// column's footprint for tapes under 4 GiB; 64-bit offsets have no limit.
type Offsets interface {
	uint32 | uint64
}

// Tape is an immutable ordered sequence of N byte strings. The zero value is
// an empty tape. A Tape built with New aliases the caller's buffers; the
// caller must not mutate them while the tape is in use.
type Tape[O Offsets] struct {
	data    []byte
	offsets []O
}

// New wraps caller-owned data and offsets as a tape after validating the
// shape: offsets must hold count+1 monotonically non-decreasing entries,
// starting at 0 and ending at len(data). No bytes are copied.
func New[O Offsets](data []byte, offsets []O) (*Tape[O], error) {
	if len(offsets) == 0 {
		if len(data) != 0 {
			return nil, ErrInvalidShape
		}
		return &Tape[O]{}, nil
	}
	if offsets[0] != 0 || uint64(offsets[len(offsets)-1]) != uint64(len(data)) {
		return nil, ErrInvalidShape
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, ErrInvalidShape
		}
	}
	return &Tape[O]{data: data, offsets: offsets}, nil
}

// FromStrings builds a tape owning a copy of the given strings.
func FromStrings(strs []string) *Tape[uint64] {
	total := 0
	for _, s := range strs {
		total += len(s)
	}
	data := make([]byte, 0, total)
	offsets := make([]uint64, 1, len(strs)+1)
	for _, s := range strs {
		data = append(data, s...)
		offsets = append(offsets, uint64(len(data)))
	}
	return &Tape[uint64]{data: data, offsets: offsets}
}

// FromBytes builds a tape owning a copy of the given byte strings.
func FromBytes(strs [][]byte) *Tape[uint64] {
	total := 0
	for _, s := range strs {
		total += len(s)
	}
	data := make([]byte, 0, total)
	offsets := make([]uint64, 1, len(strs)+1)
	for _, s := range strs {
		data = append(data, s...)
		offsets = append(offsets, uint64(len(data)))
	}
	return &Tape[uint64]{data: data, offsets: offsets}
}

// Count returns the number of strings on the tape.
func (t *Tape[O]) Count() int {
	if len(t.offsets) == 0 {
		return 0
	}
	return len(t.offsets) - 1
}

// At returns string i as a view into the tape's buffer. The result must not
// be mutated.
func (t *Tape[O]) At(i int) []byte {
	return t.data[t.offsets[i]:t.offsets[i+1]]
}

// Len returns the byte length of string i without materializing it.
func (t *Tape[O]) Len(i int) int {
	return int(t.offsets[i+1] - t.offsets[i])
}

// Bytes returns the tape's concatenated data buffer.
func (t *Tape[O]) Bytes() []byte { return t.data }

// Offsets returns the tape's delimiting offsets, count+1 entries.
func (t *Tape[O]) Offsets() []O { return t.offsets }
