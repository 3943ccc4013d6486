// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build !gpu

package similarity

import (
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"

	"github.com/strops/go-strops/strops"
)

// The default build runs batches on the host, partitioning the pairs across
// a bounded set of workers. Pairs are independent, so the only shared state
// is the caller's allocator, which must therefore tolerate concurrent Alloc
// calls (the runtime allocator and LimitAllocator both do).
var activeBackend backend = hostBackend{}

type hostBackend struct{}

func (hostBackend) distances(a, b strops.Sequence, bound uint, alloc strops.Allocator, results []uint64) error {
	al := allocatorOrDefault(alloc)
	return traverse.Parallel.Each(a.Count(), func(i int) error {
		d, err := levenshteinDistance(a.At(i), b.At(i), bound, al)
		if err != nil {
			return errors.Wrapf(err, "levenshtein pair %d", i)
		}
		results[i] = d
		return nil
	})
}

func (hostBackend) scores(a, b strops.Sequence, subs *SubstitutionMatrix, gap int8, alloc strops.Allocator, results []int64) error {
	al := allocatorOrDefault(alloc)
	return traverse.Parallel.Each(a.Count(), func(i int) error {
		s, err := needlemanWunschScore(a.At(i), b.At(i), subs, gap, al)
		if err != nil {
			return errors.Wrapf(err, "alignment pair %d", i)
		}
		results[i] = s
		return nil
	})
}
