// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

// sliceSeq adapts a string slice to Sequence for tests.
type sliceSeq []string

func (s sliceSeq) Count() int      { return len(s) }
func (s sliceSeq) At(i int) []byte { return []byte(s[i]) }

func TestSequenceArgsort(t *testing.T) {
	tests := []struct {
		name string
		in   []string
	}{
		{"empty", nil},
		{"single", []string{"only"}},
		{"short strings", []string{"banana", "apple", "cherry", "date"}},
		{"duplicates", []string{"b", "a", "b", "a", "c"}},
		{"shared long prefix", []string{
			"prefix-shared-beyond-eight-bytes-zulu",
			"prefix-shared-beyond-eight-bytes-alpha",
			"prefix-shared-beyond-eight-bytes-mike",
			"prefix-shared-beyond-eight-bytes-alpha",
		}},
		{"mixed lengths", []string{"ab", "a", "abc", "", "abcd", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := make([]uint64, len(tt.in))
			if err := SequenceArgsort(sliceSeq(tt.in), nil, order); err != nil {
				t.Fatalf("SequenceArgsort: %v", err)
			}
			for k := 1; k < len(order); k++ {
				prev, cur := tt.in[order[k-1]], tt.in[order[k]]
				if prev > cur {
					t.Errorf("order[%d..%d]: %q > %q", k-1, k, prev, cur)
				}
			}
			seen := make(map[uint64]bool, len(order))
			for _, idx := range order {
				if seen[idx] {
					t.Errorf("index %d appears twice", idx)
				}
				seen[idx] = true
			}
		})
	}
}

func TestSequenceArgsortLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	in := make([]string, 1000)
	for i := range in {
		n := rng.Intn(20)
		b := make([]byte, n)
		for j := range b {
			b[j] = byte('a' + rng.Intn(4)) // narrow alphabet forces long equal runs
		}
		in[i] = string(b)
	}
	order := make([]uint64, len(in))
	if err := SequenceArgsort(sliceSeq(in), nil, order); err != nil {
		t.Fatalf("SequenceArgsort: %v", err)
	}
	want := append([]string(nil), in...)
	sort.Strings(want)
	for k := range order {
		if in[order[k]] != want[k] {
			t.Fatalf("rank %d: got %q, want %q", k, in[order[k]], want[k])
		}
	}
}

func TestSequenceArgsortBufferMismatch(t *testing.T) {
	err := SequenceArgsort(sliceSeq{"a", "b"}, nil, make([]uint64, 1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short order buffer: got %v, want ErrInvalidArgument", err)
	}
}

func TestSequenceArgsortAllocFailure(t *testing.T) {
	in := make(sliceSeq, 100)
	for i := range in {
		in[i] = strings.Repeat("x", i%10)
	}
	err := SequenceArgsort(in, &LimitAllocator{Budget: 64}, make([]uint64, len(in)))
	if !errors.Is(err, ErrBadAlloc) {
		t.Errorf("exhausted allocator: got %v, want ErrBadAlloc", err)
	}
}

// misalignedAllocator returns buffers starting one byte past an aligned
// base, violating the 8-byte alignment scratch buffers require.
type misalignedAllocator struct{}

func (misalignedAllocator) Alloc(n int) ([]byte, error) {
	buf := make([]byte, n+1)
	return buf[1:], nil
}

func TestSequenceArgsortMisalignedAllocator(t *testing.T) {
	in := sliceSeq{"pear", "fig", "apple"}
	err := SequenceArgsort(in, misalignedAllocator{}, make([]uint64, len(in)))
	if !errors.Is(err, ErrBadAlloc) {
		t.Errorf("misaligned scratch buffer: got %v, want ErrBadAlloc", err)
	}
}

func TestPgramsSort(t *testing.T) {
	in := []string{"delta", "alpha", "charlie", "bravo", "alpine"}
	pgrams := make([]uint64, len(in))
	for i, s := range in {
		pgrams[i] = Pgram([]byte(s))
	}
	order := make([]uint64, len(in))
	if err := PgramsSort(pgrams, nil, order); err != nil {
		t.Fatalf("PgramsSort: %v", err)
	}
	for k := 1; k < len(pgrams); k++ {
		if pgrams[k-1] > pgrams[k] {
			t.Errorf("pgrams not ascending at %d", k)
		}
	}
	// order records where each sorted element came from.
	for k := range order {
		if got := Pgram([]byte(in[order[k]])); got != pgrams[k] {
			t.Errorf("order[%d] = %d does not map to sorted pgram", k, order[k])
		}
	}
	if err := PgramsSort(pgrams, nil, make([]uint64, 1)); !errors.Is(err, ErrInvalidArgument) {
		t.Error("short order buffer accepted")
	}
}

func TestArgsortCrossTier(t *testing.T) {
	in := sliceSeq{"pear", "fig", "apple", "fig", "grape", ""}
	forEachTier(t, func(t *testing.T) {
		order := make([]uint64, len(in))
		if err := SequenceArgsort(in, nil, order); err != nil {
			t.Fatalf("SequenceArgsort: %v", err)
		}
		want := []uint64{5, 2, 1, 3, 4, 0}
		for k := range want {
			if order[k] != want[k] {
				t.Fatalf("order = %v, want %v", order, want)
			}
		}
	})
}
