// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

// Intersection is a hash join: the smaller-to-build side (b) goes into an
// open-addressing table of 1-based positions keyed by the string hash, then
// a is streamed through it in order. Matched entries are flagged so that
// duplicate members of a count once, at their first position.

const intersectMatchedFlag = 1 << 63

func serialSequenceIntersect(a, b Sequence, alloc Allocator, aPos, bPos []uint64) (int, error) {
	na, nb := a.Count(), b.Count()
	limit := na
	if nb < limit {
		limit = nb
	}
	if len(aPos) < limit || len(bPos) < limit {
		return 0, ErrInvalidArgument
	}
	if limit == 0 {
		return 0, nil
	}
	al := allocatorOrDefault(alloc)

	size := 1
	for size < 2*nb {
		size <<= 1
	}
	slots, err := allocUint64(al, size)
	if err != nil {
		return 0, err
	}
	for i := range slots {
		slots[i] = 0
	}
	mask := uint64(size - 1)

	// Insert b back to front so that for duplicate members the first
	// occurrence ends up in the table.
	for i := nb - 1; i >= 0; i-- {
		s := b.At(i)
		h := serialHash(s, 0) & mask
		for {
			stored := slots[h]
			if stored == 0 {
				slots[h] = uint64(i) + 1
				break
			}
			existing := b.At(int(stored) - 1)
			if len(existing) == len(s) && serialEqual(existing, s) {
				slots[h] = uint64(i) + 1
				break
			}
			h = (h + 1) & mask
		}
	}

	matches := 0
	for i := 0; i < na; i++ {
		s := a.At(i)
		h := serialHash(s, 0) & mask
		for {
			stored := slots[h]
			if stored == 0 {
				break
			}
			pos := int(stored&^intersectMatchedFlag) - 1
			other := b.At(pos)
			if len(other) == len(s) && serialEqual(other, s) {
				if stored&intersectMatchedFlag == 0 {
					aPos[matches] = uint64(i)
					bPos[matches] = uint64(pos)
					matches++
					slots[h] = stored | intersectMatchedFlag
				}
				break
			}
			h = (h + 1) & mask
		}
	}
	return matches, nil
}
