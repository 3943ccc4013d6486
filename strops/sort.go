// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import "sort"

// Argsort works in two stages: an LSD radix sort of fixed-width pgram
// signatures carries the bulk of the ordering without touching string data,
// then runs of equal pgrams (strings sharing their first 8 bytes) are
// refined with full comparisons.

func serialPgramsSort(pgrams []uint64, alloc Allocator, order []uint64) error {
	if len(order) != len(pgrams) {
		return ErrInvalidArgument
	}
	for i := range order {
		order[i] = uint64(i)
	}
	return radixSortU64(pgrams, order, allocatorOrDefault(alloc))
}

func serialSequenceArgsort(seq Sequence, alloc Allocator, order []uint64) error {
	n := seq.Count()
	if len(order) != n {
		return ErrInvalidArgument
	}
	if n < 2 {
		for i := range order {
			order[i] = uint64(i)
		}
		return nil
	}
	a := allocatorOrDefault(alloc)
	pgrams, err := allocUint64(a, n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		pgrams[i] = Pgram(seq.At(i))
		order[i] = uint64(i)
	}
	if err := radixSortU64(pgrams, order, a); err != nil {
		return err
	}
	// Refine equal-pgram runs. A run longer than one means the strings agree
	// on their first 8 bytes and only a full comparison can order them.
	for i := 0; i < n; {
		j := i + 1
		for j < n && pgrams[j] == pgrams[i] {
			j++
		}
		if j-i > 1 {
			run := order[i:j]
			sort.SliceStable(run, func(x, y int) bool {
				return serialOrder(seq.At(int(run[x])), seq.At(int(run[y]))) == OrderLess
			})
		}
		i = j
	}
	return nil
}

// radixSortU64 sorts keys ascending with an 8-pass LSD byte radix, applying
// the same permutation to idx. Passes where all keys share a digit are
// skipped.
func radixSortU64(keys, idx []uint64, a Allocator) error {
	n := len(keys)
	if n < 2 {
		return nil
	}
	tmpKeys, err := allocUint64(a, n)
	if err != nil {
		return err
	}
	tmpIdx, err := allocUint64(a, n)
	if err != nil {
		return err
	}
	for shift := 0; shift < 64; shift += 8 {
		var count [256]int
		for _, k := range keys {
			count[byte(k>>shift)]++
		}
		if count[byte(keys[0]>>shift)] == n {
			continue
		}
		offset := 0
		for b := 0; b < 256; b++ {
			c := count[b]
			count[b] = offset
			offset += c
		}
		for i, k := range keys {
			d := byte(k >> shift)
			tmpKeys[count[d]] = k
			tmpIdx[count[d]] = idx[i]
			count[d]++
		}
		copy(keys, tmpKeys)
		copy(idx, tmpIdx)
	}
	return nil
}
