// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package similarity

import "github.com/strops/go-strops/strops"

// levenshteinDistance is the per-pair host kernel: a two-row
// Wagner-Fischer over the trimmed inputs, with an early exit once every cell
// of a row reaches the bound. The bound is exclusive; distances at or above
// it saturate to bound itself, so a caller filtering by "distance < bound"
// can compare the result against the bound directly.
func levenshteinDistance(a, b []byte, bound uint, alloc strops.Allocator) (uint64, error) {
	// Common affixes never change the distance.
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}
	// Keep b as the shorter side so the rows stay small.
	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) == 0 {
		return saturate(uint64(len(a)), bound), nil
	}
	if bound > 0 && uint(len(a)-len(b)) >= bound {
		return uint64(bound), nil
	}

	rows, err := allocUint64(alloc, 2*(len(b)+1))
	if err != nil {
		return 0, err
	}
	prev, curr := rows[:len(b)+1], rows[len(b)+1:]
	for j := range prev {
		prev[j] = uint64(j)
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = uint64(i)
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := uint64(1)
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := prev[j-1] + cost // substitution
			if del := prev[j] + 1; del < d {
				d = del
			}
			if ins := curr[j-1] + 1; ins < d {
				d = ins
			}
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		if bound > 0 && rowMin >= uint64(bound) {
			return uint64(bound), nil
		}
		prev, curr = curr, prev
	}
	return saturate(prev[len(b)], bound), nil
}

func saturate(d uint64, bound uint) uint64 {
	if bound > 0 && d >= uint64(bound) {
		return uint64(bound)
	}
	return d
}
