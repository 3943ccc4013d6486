// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

// Package similarity computes pairwise string-similarity measures over
// batches: given two equally-sized sequences, it produces one edit distance
// or alignment score per index pair. Batches execute on one heavy backend
// fixed at build configuration time — CPU-parallel by default, WebGPU with
// the "gpu" build tag — rather than through the strops dispatch table: the
// launch overhead of a batch dwarfs a per-call capability check, so backend
// selection happens once per process.
package similarity

import (
	"unsafe"

	"github.com/strops/go-strops/strops"
)

// backend is the contract the fixed heavy backend satisfies. Inputs are
// validated before the backend sees them.
type backend interface {
	distances(a, b strops.Sequence, bound uint, alloc strops.Allocator, results []uint64) error
	scores(a, b strops.Sequence, subs *SubstitutionMatrix, gap int8, alloc strops.Allocator, results []int64) error
}

// SubstitutionMatrix assigns a score to every ordered byte pair for the
// alignment-scoring variant. Higher is better.
type SubstitutionMatrix [256][256]int8

// UnitarySubstitutions builds the simplest matrix: match on the diagonal,
// mismatch everywhere else.
func UnitarySubstitutions(match, mismatch int8) *SubstitutionMatrix {
	var m SubstitutionMatrix
	for i := 0; i < 256; i++ {
		for j := 0; j < 256; j++ {
			if i == j {
				m[i][j] = match
			} else {
				m[i][j] = mismatch
			}
		}
	}
	return &m
}

// LevenshteinDistances computes the edit distance between a.At(i) and
// b.At(i) for every i, writing one distance per pair into results in input
// order. The sequences must have equal counts and results must hold exactly
// that many entries, else ErrInvalidArgument. A zero count succeeds without
// writing.
//
// When bound is nonzero it is an exclusive upper limit that lets the backend
// abandon a pair early; results for such pairs saturate at bound. bound zero
// means unbounded.
//
// The call blocks until every pair is done; there are no partial results and
// no cancellation. One status covers the whole batch.
func LevenshteinDistances(a, b strops.Sequence, bound uint, alloc strops.Allocator, results []uint64) error {
	if a.Count() != b.Count() || len(results) != a.Count() {
		return strops.ErrInvalidArgument
	}
	if a.Count() == 0 {
		return nil
	}
	return activeBackend.distances(a, b, bound, alloc, results)
}

// NeedlemanWunschScores computes the best global-alignment score between
// a.At(i) and b.At(i) under the given substitution matrix and linear gap
// cost (gap is the signed score of one inserted or deleted byte, typically
// negative). Shape rules and blocking behavior match LevenshteinDistances.
func NeedlemanWunschScores(a, b strops.Sequence, subs *SubstitutionMatrix, gap int8, alloc strops.Allocator, results []int64) error {
	if a.Count() != b.Count() || len(results) != a.Count() {
		return strops.ErrInvalidArgument
	}
	if subs == nil {
		return strops.ErrInvalidArgument
	}
	if a.Count() == 0 {
		return nil
	}
	return activeBackend.scores(a, b, subs, gap, alloc, results)
}

func allocatorOrDefault(a strops.Allocator) strops.Allocator {
	if a == nil {
		return runtimeAllocator{}
	}
	return a
}

type runtimeAllocator struct{}

func (runtimeAllocator) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }

// Scratch rows are carved out of the caller's Allocator. Buffers must be
// 8-byte aligned to reinterpret; a misaligned one counts as a failed
// allocation.
func allocUint64(a strops.Allocator, n int) ([]uint64, error) {
	if n == 0 {
		return nil, nil
	}
	buf, err := a.Alloc(n * 8)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&buf[0]))%8 != 0 {
		return nil, strops.ErrBadAlloc
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), n), nil
}

func allocInt64(a strops.Allocator, n int) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	buf, err := a.Alloc(n * 8)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&buf[0]))%8 != 0 {
		return nil, strops.ErrBadAlloc
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&buf[0])), n), nil
}
