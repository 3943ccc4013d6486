// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package similarity

import "github.com/strops/go-strops/strops"

// needlemanWunschScore is the per-pair host kernel for global alignment
// with a linear gap model: two int64 rows, diagonal move scored by the
// substitution matrix, horizontal and vertical moves by the gap cost.
func needlemanWunschScore(a, b []byte, subs *SubstitutionMatrix, gap int8, alloc strops.Allocator) (int64, error) {
	// No operand swap here: the substitution matrix may be asymmetric.
	g := int64(gap)
	if len(b) == 0 {
		return int64(len(a)) * g, nil
	}
	if len(a) == 0 {
		return int64(len(b)) * g, nil
	}

	rows, err := allocInt64(alloc, 2*(len(b)+1))
	if err != nil {
		return 0, err
	}
	prev, curr := rows[:len(b)+1], rows[len(b)+1:]
	for j := range prev {
		prev[j] = int64(j) * g
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = int64(i) * g
		for j := 1; j <= len(b); j++ {
			s := prev[j-1] + int64(subs[a[i-1]][b[j-1]])
			if del := prev[j] + g; del > s {
				s = del
			}
			if ins := curr[j-1] + g; ins > s {
				s = ins
			}
			curr[j] = s
		}
		prev, curr = curr, prev
	}
	return prev[len(b)], nil
}
